package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authapp "github.com/redacok/redacok-backend/internal/application/auth"
	feesapp "github.com/redacok/redacok-backend/internal/application/fees"
	kycapp "github.com/redacok/redacok-backend/internal/application/kyc"
	userapp "github.com/redacok/redacok-backend/internal/application/user"
	accesshttp "github.com/redacok/redacok-backend/internal/ports/http/access"
	authhttp "github.com/redacok/redacok-backend/internal/ports/http/auth"
	feeshttp "github.com/redacok/redacok-backend/internal/ports/http/fees"
	kychttp "github.com/redacok/redacok-backend/internal/ports/http/kyc"
	"github.com/redacok/redacok-backend/internal/ports/http/middlewares"
	userhttp "github.com/redacok/redacok-backend/internal/ports/http/user"
	"github.com/redacok/redacok-backend/pkg/httpx"
)

type Port struct {
	middleware *middlewares.Middleware
	auth       *authhttp.HTTP
	user       *userhttp.HTTP
	kyc        *kychttp.HTTP
	fees       *feeshttp.HTTP
	access     *accesshttp.HTTP
}

type Args struct {
	AuthApp      *authapp.App
	UserApp      *userapp.App
	KycApp       *kycapp.App
	FeesApp      *feesapp.App
	Profiles     middlewares.ProfileGetter
	CookieDomain string
}

func NewPort(args Args) *Port {
	errhandler := httpx.NewErrorHandler()
	middleware := middlewares.NewMiddleware(middlewares.Args{
		Claims:     args.AuthApp,
		Profiles:   args.Profiles,
		Errhandler: errhandler,
	})

	return &Port{
		middleware: middleware,
		auth: authhttp.NewHTTP(authhttp.Args{
			App:          args.AuthApp,
			Errhandler:   errhandler,
			CookieDomain: args.CookieDomain,
		}),
		user: userhttp.NewHTTP(userhttp.Args{
			App:        args.UserApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
		kyc: kychttp.NewHTTP(kychttp.Args{
			App:        args.KycApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
		fees: feeshttp.NewHTTP(feeshttp.Args{
			App:        args.FeesApp,
			Middleware: middleware,
			Errhandler: errhandler,
		}),
		access: accesshttp.NewHTTP(accesshttp.Args{
			Middleware: middleware,
			Errhandler: errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.OTel)
	r.Use(middlewares.Logger)

	r.Get("/health", Health)

	p.auth.Route(r)
	p.user.Route(r)
	p.kyc.Route(r)
	p.fees.Route(r)
	p.access.Route(r)

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"status": "ok"})
}
