package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/internal/config"
	"github.com/spacecal/spacecal/pkg/space"
	"github.com/spacecal/spacecal/pkg/user"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type authRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// SessionCloser tears down per-user session state on logout.
type SessionCloser interface {
	SignOut(ctx context.Context, userUid string)
}

// OAuth implements the Google sign-in flow: login hands out the consent
// URL with a state nonce, the callback exchanges the code, upserts the
// profile, provisions the personal space and issues a session token.
type OAuth struct {
	oauthConfig  *oauth2.Config
	userService  user.Service
	spaceService *space.Service
	tokens       *TokenService
	sessions     SessionCloser

	mu     sync.Mutex
	nonces map[string]time.Time
}

func NewOAuth(cfg config.Application, userService user.Service, spaceService *space.Service, tokens *TokenService, sessions SessionCloser) *OAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Auth.Google.ClientId,
		ClientSecret: cfg.Auth.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/callback",
		Scopes:       []string{"openid", "email", "profile"},
	}

	return &OAuth{
		oauthConfig:  oauthConfig,
		userService:  userService,
		spaceService: spaceService,
		tokens:       tokens,
		sessions:     sessions,
		nonces:       make(map[string]time.Time),
	}
}

const nonceTTL = 10 * time.Minute

func (o *OAuth) issueNonce() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	for nonce, issued := range o.nonces {
		if now.Sub(issued) > nonceTTL {
			delete(o.nonces, nonce)
		}
	}
	nonce := uuid.New().String()
	o.nonces[nonce] = now
	return nonce
}

func (o *OAuth) consumeNonce(nonce string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	issued, ok := o.nonces[nonce]
	if !ok {
		return false
	}
	delete(o.nonces, nonce)
	return time.Since(issued) <= nonceTTL
}

func (o *OAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	nonce := o.issueNonce()
	finalUrl := r.URL.Query().Get("finalUrl")

	log.Tracef("Redirecting to Google auth URL with nonce: %s", nonce)
	u := o.oauthConfig.AuthCodeURL(finalUrl + "|" + nonce)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(authRedirect{RedirectUrl: u}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (o *OAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "malformed state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	if !o.consumeNonce(nonce) {
		log.Warnf("rejected OAuth callback with unknown or expired nonce")
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := o.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	profile, err := o.fetchProfile(r.Context(), token)
	if err != nil {
		log.Errorf("unable to fetch user profile: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	stored, err := o.userService.RegisterLogin(r.Context(), profile)
	if err != nil {
		log.Errorf("unable to register login: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	// Provision the personal space now, before the client's calendar
	// store resolves its default space.
	if _, err := o.spaceService.EnsurePersonalSpace(r.Context(), stored.Uid, stored.DisplayName); err != nil {
		log.Errorf("unable to ensure personal space for user %s: %v", stored.Uid, err)
	}

	sessionJWT, err := o.tokens.Issue(stored)
	if err != nil {
		log.Errorf("unable to issue session token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	// The token travels in the URL fragment so it never reaches any
	// server log on the final redirect target.
	http.Redirect(w, r, finalUrl+"#access_token="+sessionJWT, http.StatusFound)
}

func (o *OAuth) fetchProfile(ctx context.Context, token *oauth2.Token) (user.User, error) {
	client := o.oauthConfig.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return user.User{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return user.User{}, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info struct {
		Id      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return user.User{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Id == "" {
		return user.User{}, fmt.Errorf("userinfo response carried no id")
	}

	displayName := info.Name
	if displayName == "" {
		displayName = info.Email
	}
	return user.User{
		Uid:         info.Id,
		DisplayName: displayName,
		Email:       info.Email,
		PhotoUrl:    info.Picture,
	}, nil
}

// Logout drops the caller's calendar store so no session data survives
// into the next sign-in.
func (o *OAuth) Logout(w http.ResponseWriter, r *http.Request) {
	uid, err := user.CurrentUid(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	o.sessions.SignOut(r.Context(), uid)
	w.WriteHeader(http.StatusNoContent)
}
