package authapp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/redacok/redacok-backend/internal/application/access"
	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
	"github.com/redacok/redacok-backend/pkg/errorx"
	"github.com/redacok/redacok-backend/pkg/i18nx"
	"github.com/redacok/redacok-backend/pkg/logging"
	"github.com/redacok/redacok-backend/pkg/otelx"
)

const (
	AccessTokenExpDuration  = 30 * time.Minute
	RefreshTokenExpDuration = 14 * 24 * time.Hour

	ISS            = "redacok_auth"
	UserSubject    = "user"
	RefreshSubject = "refresh"
	RefreshScope   = "refresh"
)

var (
	tracer = otel.Tracer("redacok/internal/application/auth")
	logger = otelslog.NewLogger("redacok/internal/application/auth")
)

var ErrWrongEmailPhoneOrPassword = errorx.NewUnauthorized().WithKey(i18nx.KeyWrongEmailPhonePassword)

type UserGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*user.User, error)
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
}

type UserSaver interface {
	SaveUser(ctx context.Context, u *user.User) error
}

type App struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	usergetter UserGetter
	usersaver  UserSaver

	accessTokenExpDuration  time.Duration
	refreshTokenExpDuration time.Duration
	accessTokenSecretKey    []byte
	refreshTokenSecretKey   []byte
	signingMethod           *jwt.SigningMethodHMAC
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserGetter UserGetter
	UserSaver  UserSaver

	AccessTokenSecretKey    string
	RefreshTokenSecretKey   string
	AccessTokenExpDuration  *time.Duration
	RefreshTokenExpDuration *time.Duration
}

func NewApp(args Args) *App {
	app := &App{
		tracer:     tracer,
		logger:     logger,
		usergetter: args.UserGetter,
		usersaver:  args.UserSaver,

		accessTokenExpDuration:  AccessTokenExpDuration,
		refreshTokenExpDuration: RefreshTokenExpDuration,
		accessTokenSecretKey:    []byte(args.AccessTokenSecretKey),
		refreshTokenSecretKey:   []byte(args.RefreshTokenSecretKey),
		signingMethod:           jwt.SigningMethodHS256,
	}

	if args.AccessTokenExpDuration != nil {
		app.accessTokenExpDuration = *args.AccessTokenExpDuration
	}
	if args.RefreshTokenExpDuration != nil {
		app.refreshTokenExpDuration = *args.RefreshTokenExpDuration
	}
	if args.Tracer != nil {
		app.tracer = args.Tracer
	}
	if args.Logger != nil {
		app.logger = args.Logger
	}

	return app
}

type Register struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type RegisterResponse struct {
	UserID user.ID
}

// RegisterHandle creates a USER-role account. The repository rejects duplicate
// email/phone with a conflict error, which passes through untouched.
func (a *App) RegisterHandle(ctx context.Context, cmd Register) (RegisterResponse, error) {
	const op = "authapp.App.RegisterHandle"
	ctx, span := a.tracer.Start(ctx, "App.RegisterHandle", trace.WithAttributes(
		attribute.String("user.email", logging.RedactEmail(cmd.Email)),
		attribute.String("user.phone", logging.RedactPhone(cmd.Phone)),
	))
	defer span.End()

	u, err := user.Register(user.RegisterArgs{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Phone:    cmd.Phone,
		Password: cmd.Password,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "invalid registration data")
		return RegisterResponse{}, err
	}

	if err := a.usersaver.SaveUser(ctx, u); err != nil {
		otelx.RecordSpanError(span, err, "failed to save user")
		return RegisterResponse{}, errorx.Wrap(err, op)
	}

	return RegisterResponse{UserID: u.ID()}, nil
}

type Login struct {
	EmailOrPhone string
	IsEmail      bool
	Password     string
}

type LoginResponse struct {
	AccessToken     string
	RefreshToken    string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	LandingPath     string
}

// LoginHandle authenticates by email or phone and returns signed access and
// refresh tokens plus the role landing path.
func (a *App) LoginHandle(ctx context.Context, cmd Login) (LoginResponse, error) {
	ctx, span := a.tracer.Start(
		ctx,
		"App.LoginHandle",
		trace.WithAttributes(
			attribute.Bool("is_email", cmd.IsEmail),
			attribute.String("signing_method", a.signingMethod.Alg()),
		),
	)
	defer span.End()

	var (
		u   *user.User
		err error
	)
	if cmd.IsEmail {
		span.SetAttributes(attribute.String("user.email", logging.RedactEmail(cmd.EmailOrPhone)))
		u, err = a.usergetter.GetUserByEmail(ctx, cmd.EmailOrPhone)
	} else {
		span.SetAttributes(attribute.String("user.phone", logging.RedactPhone(cmd.EmailOrPhone)))
		u, err = a.usergetter.GetUserByPhone(ctx, cmd.EmailOrPhone)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get user")
		if errorx.IsNotFound(err) {
			return LoginResponse{}, ErrWrongEmailPhoneOrPassword.WithCause(err)
		}
		return LoginResponse{}, err
	}

	err = u.ComparePassword(cmd.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compare password")
		return LoginResponse{}, ErrWrongEmailPhoneOrPassword.WithCause(err)
	}

	accessjwt, refreshjwt, err := a.issueTokens(u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign tokens")
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken:     accessjwt,
		RefreshToken:    refreshjwt,
		AccessTokenExp:  a.accessTokenExpDuration,
		RefreshTokenExp: a.refreshTokenExpDuration,
		LandingPath:     access.ResolveRoleLanding(u.Role()),
	}, nil
}

type Refresh struct {
	RefreshToken string
}

// RefreshHandle validates a refresh token and issues a fresh access token.
// The refresh token itself is reused until it expires.
func (a *App) RefreshHandle(ctx context.Context, cmd Refresh) (LoginResponse, error) {
	ctx, span := a.tracer.Start(
		ctx,
		"App.RefreshHandle",
		trace.WithAttributes(attribute.String("signing_method", a.signingMethod.Alg())),
	)
	defer span.End()

	refreshToken, err := jwt.Parse(cmd.RefreshToken, func(t *jwt.Token) (any, error) {
		return a.refreshTokenSecretKey, nil
	}, jwt.WithValidMethods([]string{a.signingMethod.Alg()}))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse refresh jwt token")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}

	refreshClaims, ok := refreshToken.Claims.(jwt.MapClaims)
	if !ok {
		err = errors.New("refresh token claims are not map claims")
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse refresh token claims")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	if refreshClaims["iss"] != ISS || refreshClaims["sub"] != RefreshSubject {
		err = errors.New("invalid refresh token issuer or subject")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token claims")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	expUnix, ok := refreshClaims["exp"].(float64)
	if !ok {
		err = errors.New("missing refresh token expiration")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token expiration")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	if time.Unix(int64(expUnix), 0).Before(time.Now().UTC()) {
		err = errors.New("refresh token expired")
		span.RecordError(err)
		span.SetStatus(codes.Error, "refresh token expired")
		return LoginResponse{}, errorx.NewTokenExpired().WithCause(err)
	}
	uid, ok := refreshClaims["uid"].(string)
	if !ok {
		err = errors.New("missing or invalid user id in refresh token claims")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid refresh token user id")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	span.SetAttributes(attribute.String("user.id", uid))

	userID, err := user.ParseID(uid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed user id in refresh token claims")
		return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
	}

	u, err := a.usergetter.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get user by id")
		if errorx.IsNotFound(err) {
			return LoginResponse{}, errorx.NewInvalidCredentials().WithCause(err)
		}
		return LoginResponse{}, errorx.NewInternalError().WithCause(err)
	}

	accessjwt, err := a.signAccessToken(u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign access token")
		return LoginResponse{}, errorx.NewInternalError().WithCause(err)
	}

	return LoginResponse{
		AccessToken:     accessjwt,
		RefreshToken:    cmd.RefreshToken, // keep the same refresh token
		AccessTokenExp:  a.accessTokenExpDuration,
		RefreshTokenExp: a.refreshTokenExpDuration,
		LandingPath:     access.ResolveRoleLanding(u.Role()),
	}, nil
}

func (a *App) issueTokens(u *user.User) (accessjwt, refreshjwt string, err error) {
	accessjwt, err = a.signAccessToken(u)
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss":   ISS,
		"sub":   RefreshSubject,
		"exp":   time.Now().Add(a.refreshTokenExpDuration).Unix(),
		"iat":   time.Now().Unix(),
		"jti":   uuid.New().String(),
		"uid":   u.ID().String(),
		"scope": RefreshScope,
	})
	refreshjwt, err = refreshToken.SignedString(a.refreshTokenSecretKey)
	if err != nil {
		return "", "", err
	}

	return accessjwt, refreshjwt, nil
}

func (a *App) signAccessToken(u *user.User) (string, error) {
	accessToken := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss":       ISS,
		"sub":       UserSubject,
		"exp":       time.Now().Add(a.accessTokenExpDuration).Unix(),
		"iat":       time.Now().Unix(),
		"uid":       u.ID().String(),
		"user_role": u.Role().String(),
	})
	return accessToken.SignedString(a.accessTokenSecretKey)
}

// ParseAccessClaims verifies an access token and extracts the session
// identity. Used by the HTTP auth middleware.
func (a *App) ParseAccessClaims(tokenString string) (access.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return a.accessTokenSecretKey, nil
	}, jwt.WithValidMethods([]string{a.signingMethod.Alg()}))
	if err != nil {
		return access.Session{}, errorx.NewInvalidCredentials().WithCause(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["iss"] != ISS || claims["sub"] != UserSubject {
		return access.Session{}, errorx.NewInvalidCredentials()
	}

	uid, _ := claims["uid"].(string)
	userID, err := user.ParseID(uid)
	if err != nil {
		return access.Session{}, errorx.NewInvalidCredentials().WithCause(err)
	}
	userRole, _ := claims["user_role"].(string)

	return access.Session{UserID: userID, Role: role.Role(userRole)}, nil
}
