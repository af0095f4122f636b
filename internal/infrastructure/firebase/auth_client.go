package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	secureTokenURL     = "https://securetoken.googleapis.com/v1/token"
)

// TokenPair is what the REST sign-in endpoints hand back.
type TokenPair struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    int
}

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client

	signInURL  string
	refreshURL string
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		signInURL:  identityToolkitURL,
		refreshURL: secureTokenURL,
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// IsEmailTaken reports auth errors caused by a duplicate email on CreateUser.
func IsEmailTaken(err error) bool {
	return auth.IsEmailAlreadyExists(err)
}

func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUserByEmail(ctx, "healthcheck@gmrportal.invalid")
	if err == nil || auth.IsUserNotFound(err) {
		return nil
	}
	return err
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type refreshResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type restError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*TokenPair, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("firebase API key is not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.signInURL+"?key="+url.QueryEscape(f.apiKey), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out signInResponse
	if err := f.do(req, &out); err != nil {
		return nil, err
	}

	return &TokenPair{
		UID:          out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    atoi(out.ExpiresIn),
	}, nil
}

func (f *FirebaseAuthClient) RefreshIDToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("firebase API key is not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.refreshURL+"?key="+url.QueryEscape(f.apiKey), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out refreshResponse
	if err := f.do(req, &out); err != nil {
		return nil, err
	}

	return &TokenPair{
		UID:          out.UserID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    atoi(out.ExpiresIn),
	}, nil
}

func (f *FirebaseAuthClient) do(req *http.Request, out interface{}) error {
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach identity service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr restError
		_ = json.Unmarshal(body, &apiErr)
		return fmt.Errorf("identity service error: %s", apiErr.Error.Message)
	}

	return json.Unmarshal(body, out)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
