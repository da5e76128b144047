package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider implements Provider on Firebase Authentication. Password
// and phone flows go through the Identity Toolkit REST API (the admin SDK
// does not expose credential sign-in); user records and Google ID tokens go
// through the admin SDK.
type FirebaseProvider struct {
	client  *fbauth.Client
	apiKey  string
	httpCli *http.Client
}

// NewFirebase initializes the Firebase app and auth client. An empty
// credentialsFile falls back to Application Default Credentials.
func NewFirebase(ctx context.Context, projectID, credentialsFile, apiKey string) (*FirebaseProvider, error) {
	cfg := &firebase.Config{ProjectID: projectID}
	var (
		app *firebase.App
		err error
	)
	if credentialsFile != "" {
		app, err = firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsFile))
	} else {
		app, err = firebase.NewApp(ctx, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &FirebaseProvider{
		client:  client,
		apiKey:  apiKey,
		httpCli: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*User, error) {
	var resp struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	err := p.post(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &User{ID: resp.LocalID, DisplayName: displayNameOrEmail(resp.DisplayName, resp.Email), Email: resp.Email}, nil
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (*User, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	return userFromRecord(record), nil
}

func (p *FirebaseProvider) SignInWithGoogle(ctx context.Context, idToken string) (*User, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	record, err := p.client.GetUser(ctx, token.UID)
	if err != nil {
		return nil, err
	}
	return userFromRecord(record), nil
}

func (p *FirebaseProvider) SignInWithPhone(ctx context.Context, phoneNumber string) (Confirmation, error) {
	var resp struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := p.post(ctx, "accounts:sendVerificationCode", map[string]interface{}{
		"phoneNumber": phoneNumber,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &phoneConfirmation{provider: p, sessionInfo: resp.SessionInfo}, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, userID string) error {
	return p.client.RevokeRefreshTokens(ctx, userID)
}

type phoneConfirmation struct {
	provider    *FirebaseProvider
	sessionInfo string
}

func (c *phoneConfirmation) Confirm(ctx context.Context, code string) (*User, error) {
	var resp struct {
		LocalID     string `json:"localId"`
		PhoneNumber string `json:"phoneNumber"`
	}
	err := c.provider.post(ctx, "accounts:signInWithPhoneNumber", map[string]interface{}{
		"sessionInfo": c.sessionInfo,
		"code":        code,
	}, &resp)
	if err != nil {
		return nil, err
	}
	record, err := c.provider.client.GetUser(ctx, resp.LocalID)
	if err != nil {
		return &User{ID: resp.LocalID, DisplayName: resp.PhoneNumber}, nil
	}
	return userFromRecord(record), nil
}

// post calls an Identity Toolkit endpoint and surfaces the provider error
// message verbatim on failure.
func (p *FirebaseProvider) post(ctx context.Context, endpoint string, body map[string]interface{}, out interface{}) error {
	if p.apiKey == "" {
		return errors.New("firebase web api key not configured")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return errors.New(apiErr.Error.Message)
		}
		return fmt.Errorf("identity toolkit: status %d", resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}

func userFromRecord(record *fbauth.UserRecord) *User {
	return &User{
		ID:          record.UID,
		DisplayName: displayNameOrEmail(record.DisplayName, record.Email),
		Email:       record.Email,
	}
}

func displayNameOrEmail(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
