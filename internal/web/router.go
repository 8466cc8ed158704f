package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/instructo/tutor/internal/health"
	"github.com/instructo/tutor/internal/llm"
	"github.com/instructo/tutor/internal/provider"
	"github.com/instructo/tutor/internal/tutor"
	"github.com/instructo/tutor/internal/web/handlers"
	"github.com/instructo/tutor/internal/web/middleware"
)

type RateLimit struct {
	RPS   float64
	Burst int
}

type Router struct {
	log            *slog.Logger
	sw             *llm.Switch
	svc            *tutor.Service
	factory        *provider.Factory
	allowedOrigins []string
	rateLimit      RateLimit
}

func NewRouter(log *slog.Logger, sw *llm.Switch, svc *tutor.Service, factory *provider.Factory, allowedOrigins []string, rl RateLimit) *Router {
	return &Router{
		log:            log,
		sw:             sw,
		svc:            svc,
		factory:        factory,
		allowedOrigins: allowedOrigins,
		rateLimit:      rl,
	}
}

// Handler builds the route table. ctx bounds the rate limiter's cleanup
// loop.
func (r *Router) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	tutorHandler := handlers.NewTutorHandler(r.svc, r.log)
	llmHandler := handlers.NewLLMHandler(r.sw, r.factory, r.log)

	rateLimiter := middleware.NewRateLimiter(ctx, r.rateLimit.RPS, r.rateLimit.Burst)

	generated := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.RequestID(),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.CacheControl("no-store"),
		)
	}

	mux.Handle("POST /generate", generated(tutorHandler.Generate))
	mux.Handle("POST /update_llm", middleware.Chain(
		http.HandlerFunc(llmHandler.Update),
		middleware.RequestID(),
		middleware.PrometheusMetrics(),
		middleware.RequestLogger(r.log),
		middleware.RateLimit(rateLimiter),
	))

	mux.Handle("GET /quiz/generate", generated(tutorHandler.GenerateQuiz))
	mux.Handle("POST /quiz/evaluate", generated(tutorHandler.EvaluateQuiz))

	mux.Handle("POST /code/review", generated(tutorHandler.ReviewCode))
	mux.Handle("POST /code/chat", generated(tutorHandler.Chat))

	mux.Handle("POST /challenge/incomplete-code", generated(tutorHandler.IncompleteCode))
	mux.Handle("POST /challenge/output-based", generated(tutorHandler.OutputChallenge))
	mux.Handle("POST /challenge/problem-solving", generated(tutorHandler.ProblemChallenge))
	mux.Handle("POST /challenge/submit-solution", generated(tutorHandler.SubmitSolution))

	mux.Handle("GET /healthz", health.Handler(r.sw))

	return middleware.CORS(r.allowedOrigins)(mux)
}
