package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/auth"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/config"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/transport/middleware"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/transport/rest"
)

const requestsPerMinute = 300

type routerDeps struct {
	logger      *slog.Logger
	pool        *pgxpool.Pool
	verifier    *auth.Verifier
	rateLimiter *middleware.RateLimiter
	cors        config.CORSConfig

	sampling *rest.SamplingHandler
	review   *rest.ReviewHandler
	media    *rest.MediaHandler
	stats    *rest.StatsHandler
}

func newRouter(deps routerDeps) http.Handler {
	mux := http.NewServeMux()

	health := rest.NewHealthHandler(deps.pool, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /tasks/recording", deps.sampling.Recording)
	mux.HandleFunc("GET /tasks/review", deps.sampling.Review)
	mux.HandleFunc("GET /tasks/translation", deps.sampling.Translation)
	mux.HandleFunc("GET /tasks/translation-review", deps.sampling.TranslationReview)

	mux.HandleFunc("POST /reviews", deps.review.Submit)

	mux.HandleFunc("POST /media/audio", deps.media.CreateAudio)
	mux.HandleFunc("DELETE /media/audio/{id}", deps.media.DeleteAudio)
	mux.HandleFunc("POST /media/audio/rename", deps.media.RenameAudio)
	mux.HandleFunc("POST /media/signed-upload", deps.media.SignedUpload)

	mux.HandleFunc("GET /stats/me", deps.stats.Me)
	mux.HandleFunc("GET /stats/users/{id}", deps.stats.ByUser)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.logger),
		middleware.Recovery(deps.logger),
		middleware.CORS(deps.cors),
		deps.rateLimiter.Limit(requestsPerMinute),
		middleware.Auth(deps.verifier),
	)

	return chain(mux)
}
