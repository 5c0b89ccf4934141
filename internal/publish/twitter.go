package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/content-autopilot/internal/fetch"
	"github.com/jonathan/content-autopilot/internal/oauth1"
	"github.com/jonathan/content-autopilot/internal/store"
	"github.com/jonathan/content-autopilot/internal/types"
)

// DefaultUploadURL is the platform's media upload endpoint.
const DefaultUploadURL = "https://upload.twitter.com/1.1/media/upload.json"

// DefaultTweetURL is the platform's post creation endpoint.
const DefaultTweetURL = "https://api.twitter.com/2/tweets"

// MaxTweetRunes is the platform's post length limit.
const MaxTweetRunes = 280

// DefaultTimeout bounds each outbound platform call.
const DefaultTimeout = 30 * time.Second

// Twitter publishes content to a Twitter-compatible API. Credentials are
// fetched fresh per call; they may be rotated between requests.
type Twitter struct {
	store  store.Store
	logger *slog.Logger
	client *http.Client

	// Endpoint overrides for tests.
	UploadURL string
	TweetURL  string
}

// NewTwitter returns a publisher backed by the given credential store.
func NewTwitter(st store.Store, logger *slog.Logger) *Twitter {
	return &Twitter{
		store:     st,
		logger:    logger,
		client:    &http.Client{Timeout: DefaultTimeout},
		UploadURL: DefaultUploadURL,
		TweetURL:  DefaultTweetURL,
	}
}

// Publish validates the request, optionally uploads media, and creates the
// post. Input validation runs before any credential or network work.
func (t *Twitter) Publish(ctx context.Context, userID uuid.UUID, req types.PublishRequest) (*types.PublishResult, error) {
	if err := precheck(req); err != nil {
		return nil, err
	}

	raw, err := t.store.GetCredentials(ctx, userID, store.IntegrationTwitter)
	if err != nil {
		return nil, fmt.Errorf("reading twitter credentials: %w", err)
	}
	creds := credentialsFrom(raw)
	if !creds.Complete() {
		return nil, &ConfigError{Message: "twitter credentials missing or incomplete: configure twitter in settings"}
	}

	var mediaID string
	if req.MediaURL != "" {
		mediaID, err = t.uploadMedia(ctx, req.MediaURL, req.MediaType, creds)
		if err != nil {
			return nil, fmt.Errorf("media upload failed: %w", err)
		}
	}

	result, err := t.postTweet(ctx, req.Content, mediaID, creds)
	if err != nil {
		return nil, err
	}

	t.logger.Info("published post", "tweet_id", result.TweetID, "user_id", userID)
	return result, nil
}

// precheck applies the fail-fast input rules in order: content present,
// within the length limit, and not all whitespace.
func precheck(req types.PublishRequest) error {
	if req.Content == "" {
		return &ValidationError{Message: "post content is required"}
	}
	if n := utf8.RuneCountInString(req.Content); n > MaxTweetRunes {
		return &ValidationError{Message: fmt.Sprintf("post is %d characters, limit is %d", n, MaxTweetRunes)}
	}
	if strings.TrimSpace(req.Content) == "" {
		return &ValidationError{Message: "post content is empty"}
	}
	if req.MediaURL != "" && req.MediaType != "" && req.MediaType != "image" && req.MediaType != "video" {
		return &ValidationError{Message: fmt.Sprintf("unsupported media type %q", req.MediaType)}
	}
	return nil
}

// credentialsFrom maps a stored credential set onto the OAuth fields.
func credentialsFrom(m map[string]string) types.OAuthCredentials {
	return types.OAuthCredentials{
		ConsumerKey:       m["api_key"],
		ConsumerSecret:    m["api_secret"],
		AccessToken:       m["access_token"],
		AccessTokenSecret: m["access_token_secret"],
	}
}

// uploadMedia downloads the resource, bounds its size by media type, and
// uploads it through a single OAuth-signed multipart POST. It returns the
// platform's opaque media identifier.
func (t *Twitter) uploadMedia(ctx context.Context, mediaURL, mediaType string, creds types.OAuthCredentials) (string, error) {
	opts := fetch.DefaultOptions()
	opts.MaxBytes = fetch.MaxBytesFor(mediaType)

	res, err := fetch.Media(ctx, mediaURL, opts)
	if err != nil {
		if errors.Is(err, fetch.ErrTooLarge) {
			return "", &ValidationError{Message: err.Error()}
		}
		return "", &TransportError{Message: "media download failed", Cause: err}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", "media")
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(res.Data); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.UploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", oauth1.AuthorizationHeader(http.MethodPost, t.UploadURL, nil, creds))

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Message: "media upload request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Message: "reading upload response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{
			StatusCode: resp.StatusCode,
			Message:    remapStatus(resp.StatusCode, platformMessage(respBody)),
		}
	}

	var parsed struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.MediaIDString == "" {
		return "", &ProtocolError{Message: "upload succeeded but returned no media id"}
	}

	t.logger.Debug("uploaded media", "media_id", parsed.MediaIDString, "bytes", len(res.Data))
	return parsed.MediaIDString, nil
}

// postTweet submits the post payload with a fresh OAuth signature. The JSON
// body carries no signed request parameters, so the signature covers only
// the oauth_* set.
func (t *Twitter) postTweet(ctx context.Context, content, mediaID string, creds types.OAuthCredentials) (*types.PublishResult, error) {
	payload := tweetPayload{Text: content}
	if mediaID != "" {
		payload.Media = &tweetMedia{MediaIDs: []string{mediaID}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding post payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.TweetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating post request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", oauth1.AuthorizationHeader(http.MethodPost, t.TweetURL, nil, creds))

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Message: "post request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "reading post response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    remapStatus(resp.StatusCode, platformMessage(respBody)),
		}
	}

	var parsed struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil || parsed.Data.ID == "" {
		return nil, &ProtocolError{Message: "publish succeeded but no post id was returned"}
	}

	text := parsed.Data.Text
	if text == "" {
		text = content
	}
	return &types.PublishResult{
		TweetID: parsed.Data.ID,
		URL:     "https://twitter.com/i/web/status/" + parsed.Data.ID,
		Text:    text,
	}, nil
}

type tweetPayload struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

// platformMessage extracts a readable error message from a platform error
// body: errors[0].detail, then errors[0].title, then a top-level detail
// field, then the raw body.
func platformMessage(body []byte) string {
	var parsed struct {
		Errors []struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		} `json:"errors"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Errors) > 0 {
			if parsed.Errors[0].Detail != "" {
				return parsed.Errors[0].Detail
			}
			if parsed.Errors[0].Title != "" {
				return parsed.Errors[0].Title
			}
		}
		if parsed.Detail != "" {
			return parsed.Detail
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "platform request failed"
}

// remapStatus rewrites the common auth and quota statuses into actionable
// text. Presentation only; the error taxonomy is unchanged.
func remapStatus(status int, msg string) string {
	switch status {
	case http.StatusUnauthorized:
		return "authentication failed: check your API keys and tokens"
	case http.StatusForbidden:
		return "access forbidden: check your app permissions"
	case http.StatusTooManyRequests:
		return "rate limit exceeded: try again later"
	}
	return msg
}
