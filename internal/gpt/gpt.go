package gpt

import (
	"context"
	"sync"

	gpt "github.com/m-ariany/gpt-chat-client"
)

var (
	client *gpt.Client
	once   sync.Once
)

// Client is the slice of the chat client the moderation and insight
// handlers need. Keeping it an interface lets tests script model output.
type Client interface {
	Instruct(instruction string)
	Prompt(ctx context.Context, prompt string) (string, error)
}

type ClientFactory interface {
	Client() (Client, error)
	ClientWithConfig(ClientConfig) (Client, error)
}

type factory struct {
}

func NewClientFactory(cnf ClientConfig) (ClientFactory, error) {
	var err error
	once.Do(func() {
		client, err = gpt.NewClient(cnf)
	})
	return &factory{}, err
}

func (g factory) Client() (Client, error) {
	return chatClient{client: client.Clone()}, nil
}

func (g factory) ClientWithConfig(cnf ClientConfig) (Client, error) {
	return chatClient{client: client.CloneWithConfig(cnf)}, nil
}

type chatClient struct {
	client *gpt.Client
}

func (c chatClient) Instruct(instruction string) {
	c.client.Instruct(instruction)
}

func (c chatClient) Prompt(ctx context.Context, prompt string) (string, error) {
	return c.client.Prompt(ctx, prompt)
}

type ClientConfig = gpt.ClientConfig
