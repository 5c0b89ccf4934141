// Package oauth1 implements OAuth 1.0a request signing (HMAC-SHA1) for the
// platform API. Signing is a pure computation: given well-formed inputs it
// never fails, and nonce/timestamp are scoped to a single outbound call.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/content-autopilot/internal/types"
)

// SignatureMethod is the only signature method supported by this engine.
const SignatureMethod = "HMAC-SHA1"

// Version is the OAuth protocol version sent with every request.
const Version = "1.0"

// PercentEncode escapes a string per RFC 3986. Unreserved characters
// (A-Z a-z 0-9 - . _ ~) pass through; every other byte of the UTF-8
// encoding becomes %XX with uppercase hex digits.
func PercentEncode(s string) string {
	var sb strings.Builder
	for _, b := range []byte(s) {
		if isUnreserved(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteString(fmt.Sprintf("%%%02X", b))
		}
	}
	return sb.String()
}

func isUnreserved(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		b == '-' || b == '.' || b == '_' || b == '~'
}

// Sign computes the OAuth 1.0a signature for a request.
// params must contain the oauth_* parameters merged with any request
// parameters covered by the signature. The signature base string is
// UPPERCASE(method) & enc(url) & enc(sorted k=v pairs), signed with
// enc(consumerSecret) & enc(tokenSecret).
func Sign(method, rawURL string, params map[string]string, consumerSecret, tokenSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, PercentEncode(k)+"="+PercentEncode(params[k]))
	}
	paramString := strings.Join(pairs, "&")

	baseString := strings.ToUpper(method) + "&" + PercentEncode(rawURL) + "&" + PercentEncode(paramString)
	signingKey := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)

	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AuthorizationHeader builds a complete OAuth Authorization header value for
// one outbound call. requestParams are any body/query parameters covered by
// the signature; for JSON-body POSTs this is empty and the signature covers
// only the oauth_* parameters.
func AuthorizationHeader(method, rawURL string, requestParams map[string]string, creds types.OAuthCredentials) string {
	return authorizationHeader(method, rawURL, requestParams, creds, nonce(), time.Now().Unix())
}

// authorizationHeader is the deterministic core of AuthorizationHeader,
// split out so tests can fix the nonce and timestamp.
func authorizationHeader(method, rawURL string, requestParams map[string]string, creds types.OAuthCredentials, nonce string, timestamp int64) string {
	oauthParams := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": SignatureMethod,
		"oauth_timestamp":        strconv.FormatInt(timestamp, 10),
		"oauth_token":            creds.AccessToken,
		"oauth_version":          Version,
	}

	signed := make(map[string]string, len(oauthParams)+len(requestParams))
	for k, v := range requestParams {
		signed[k] = v
	}
	for k, v := range oauthParams {
		signed[k] = v
	}

	oauthParams["oauth_signature"] = Sign(method, rawURL, signed, creds.ConsumerSecret, creds.AccessTokenSecret)

	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rendered := make([]string, 0, len(keys))
	for _, k := range keys {
		rendered = append(rendered, fmt.Sprintf(`%s="%s"`, k, PercentEncode(oauthParams[k])))
	}
	return "OAuth " + strings.Join(rendered, ", ")
}

// nonce returns a single-use random token for replay protection.
func nonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails if the OS entropy source is broken;
		// fall back to the clock rather than panicking mid-request.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf)
}
