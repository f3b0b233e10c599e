package httpadapter

import (
	"embed"
	"net/http"
)

//go:embed assets/*.svg
var assets embed.FS

type manifestResponse struct {
	MiniApp miniAppManifest `json:"miniapp"`
}

type miniAppManifest struct {
	Version               string   `json:"version"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	IconURL               string   `json:"iconUrl"`
	HomeURL               string   `json:"homeUrl"`
	ImageURL              string   `json:"imageUrl"`
	ButtonTitle           string   `json:"buttonTitle"`
	SplashImageURL        string   `json:"splashImageUrl"`
	SplashBackgroundColor string   `json:"splashBackgroundColor"`
	Tags                  []string `json:"tags"`
	PrimaryCategory       string   `json:"primaryCategory"`
	WebhookURL            *string  `json:"webhookUrl"`
}

// /.well-known/farcaster.json
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	base := baseURL(r)
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, manifestResponse{
		MiniApp: miniAppManifest{
			Version:               "1",
			Name:                  "DCA Agent",
			Description:           "AI-powered automated DCA trading on Arbitrum using Camelot DEX. Chat with the agent to set up custom strategies.",
			IconURL:               base + "/api/image/splash",
			HomeURL:               base,
			ImageURL:              base + "/api/image/preview",
			ButtonTitle:           "💬 Chat with Agent",
			SplashImageURL:        base + "/api/image/splash",
			SplashBackgroundColor: "#0f0f23",
			Tags:                  []string{"defi", "trading", "dca", "arbitrum", "camelot", "automation", "ai"},
			PrimaryCategory:       "defi",
		},
	})
}

func (s *Server) handlePreviewImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	serveSVG(w, r, "assets/preview.svg")
}

func (s *Server) handleSplashImage(w http.ResponseWriter, r *http.Request) {
	serveSVG(w, r, "assets/splash.svg")
}

func serveSVG(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w)
		return
	}

	body, err := assets.ReadFile(name)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(body)
	}
}

// baseURL rebuilds the public origin, honouring a TLS-terminating proxy.
func baseURL(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
