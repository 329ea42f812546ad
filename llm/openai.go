package llm

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-5-nano"

// OpenAI implements Provider with the OpenAI chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewOpenAI creates a new OpenAI provider.
// If apiKey is empty, it reads from OPENAI_API_KEY environment variable.
func NewOpenAI(apiKey string) *OpenAI {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &OpenAI{
		apiKey: apiKey,
		model:  defaultOpenAIModel,
		http:   &http.Client{},
	}
}

// WithModel sets a specific model to use.
func (o *OpenAI) WithModel(model string) *OpenAI {
	if model != "" {
		o.model = model
	}
	return o
}

// WithBaseURL points the provider at an OpenAI-compatible endpoint.
func (o *OpenAI) WithBaseURL(url string) *OpenAI {
	o.baseURL = url
	return o
}

// WithHTTPClient replaces the HTTP client.
func (o *OpenAI) WithHTTPClient(c *http.Client) *OpenAI {
	o.http = c
	return o
}

// Name returns the provider name.
func (o *OpenAI) Name() string {
	return "openai"
}

// Available checks if an API key is configured.
func (o *OpenAI) Available() bool {
	return o.apiKey != ""
}

// Ask sends one chat completion request.
func (o *OpenAI) Ask(ctx context.Context, req Request) (*Reply, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(o.apiKey),
		option.WithHTTPClient(o.http),
		option.WithMaxRetries(1),
	}
	if o.baseURL != "" {
		opts = append(opts, option.WithBaseURL(o.baseURL))
	}
	client := openai.NewClient(opts...)

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	for _, t := range req.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.Parameters),
			},
		})
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("response contained no choices")
	}

	msg := resp.Choices[0].Message
	reply := &Reply{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return reply, nil
}
