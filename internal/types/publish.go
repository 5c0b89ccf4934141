package types

import (
	"github.com/go-playground/validator/v10"
)

// OAuthCredentials holds the four OAuth 1.0a secrets required to sign
// requests to the platform API. Partial sets are a configuration error,
// never a retryable one.
type OAuthCredentials struct {
	ConsumerKey       string `json:"api_key"`
	ConsumerSecret    string `json:"api_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

// Complete reports whether all four credential fields are present.
func (c OAuthCredentials) Complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" &&
		c.AccessToken != "" && c.AccessTokenSecret != ""
}

// PublishRequest represents a request to publish content to the platform.
type PublishRequest struct {
	Content   string `json:"content" validate:"required"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty" validate:"omitempty,oneof=image video"`
}

// Validate validates the PublishRequest using the validator.
func (r *PublishRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// PublishResult is the outcome of a successful publish.
type PublishResult struct {
	TweetID string `json:"tweetId"`
	URL     string `json:"url"`
	Text    string `json:"text"`
}
