/*
 * Copyright 2026 the cudymon authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cudy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	loginPath       = "/cgi-bin/luci"
	sessionCookie   = "sysauth"
	loginLanguage   = "en"
	maxLoginBodyLen = 1 << 20
)

// loginTokens are the anti-forgery fields embedded in the login page.
// Any of them may be absent depending on firmware revision.
type loginTokens struct {
	csrf  string
	token string
	salt  string
}

// CookieHeader returns the Cookie header value for authenticated requests
// ("sysauth=<cookie>"). A held cookie is reused unless force is set;
// otherwise a fresh authentication is attempted. Returns the empty string
// when no session could be established.
func (c *Client) CookieHeader(ctx context.Context, force bool) string {
	if !force && c.cookie != "" {
		return sessionCookie + "=" + c.cookie
	}

	if c.Authenticate(ctx) {
		return sessionCookie + "=" + c.cookie
	}

	return ""
}

// Authenticate performs the login handshake. It never returns an error:
// any failure is logged and reported as false so the poll loop can simply
// try again next cycle. On failure the previously held cookie is left
// untouched.
func (c *Client) Authenticate(ctx context.Context) bool {
	if c.state == stateExpired {
		c.state = stateReauthenticating
	}

	tokens, err := c.fetchLoginTokens(ctx)
	if err != nil {
		c.logger.Error().Err(err).Str("host", c.host).Msg("Error retrieving login page")
		c.state = stateFailed

		return false
	}

	cookie, err := c.submitLogin(ctx, tokens)
	if err != nil {
		c.logger.Error().Err(err).Str("host", c.host).Msg("Login rejected")
		c.state = stateFailed

		return false
	}

	c.cookie = cookie
	c.state = stateAuthenticated

	c.logger.Debug().Str("host", c.host).Msg("Authenticated against router")

	return true
}

// fetchLoginTokens retrieves the login page and extracts the hidden
// anti-forgery inputs. A missing input is not an error.
func (c *Client) fetchLoginTokens(ctx context.Context) (loginTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.loginURL(), http.NoBody)
	if err != nil {
		return loginTokens{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return loginTokens{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return loginTokens{}, fmt.Errorf("%w: %d", errUnexpectedStatusCode, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxLoginBodyLen))
	if err != nil {
		return loginTokens{}, err
	}

	extract := func(name string) string {
		value, _ := doc.Find(`input[name="` + name + `"]`).Attr("value")
		return value
	}

	return loginTokens{
		csrf:  extract("_csrf"),
		token: extract("token"),
		salt:  extract("salt"),
	}, nil
}

// submitLogin posts the login form and returns the issued session cookie.
func (c *Client) submitLogin(ctx context.Context, tokens loginTokens) (string, error) {
	form := url.Values{}

	// Only non-empty fields go on the wire; the firmware rejects forms
	// carrying fields it did not emit.
	set := func(key, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}

	set("_csrf", tokens.csrf)
	set("token", tokens.token)
	set("salt", tokens.salt)
	set("zonename", localZoneName())
	set("timeclock", strconv.FormatInt(time.Now().Unix(), 10))
	set("luci_language", loginLanguage)
	set("luci_username", c.username)
	set("luci_password", derivePassword(c.password, tokens.salt, tokens.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// No cookie on the login request itself.
	req.Header.Set("Cookie", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d", errAuthFailed, resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", errCookieMissing
}

// localZoneName returns the zone name sent in the login form. TZ gives the
// IANA name when set; otherwise the zone abbreviation is used, since
// time.Location.String() on the local zone is just "Local".
func localZoneName() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}

	name, _ := time.Now().Zone()

	return name
}

// derivePassword computes the submitted password. With a salt the password
// is sha256(password+salt) hex; a token hashes that digest again as
// sha256(digest+token). Without a salt the password goes over in clear.
func derivePassword(password, salt, token string) string {
	if salt == "" {
		return password
	}

	sum := sha256.Sum256([]byte(password + salt))
	hashed := hex.EncodeToString(sum[:])

	if token != "" {
		sum = sha256.Sum256([]byte(hashed + token))
		hashed = hex.EncodeToString(sum[:])
	}

	return hashed
}

func (c *Client) loginURL() string {
	return "http://" + c.host + loginPath
}
