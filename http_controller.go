package auth

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const (
	// LocalsMemberKey is the fiber locals key holding the authenticated member
	LocalsMemberKey = "auth_member"
	// LocalsClaimsKey is the fiber locals key holding the verified claims
	LocalsClaimsKey = "auth_claims"
)

// genericUnauthorized is the single external message for every
// authentication failure, so callers cannot probe which accounts exist or
// are locked.
const genericUnauthorized = "Incorrect email or password"

type AuthControllerRoutes struct {
	Login          string
	Refresh        string
	Logout         string
	Me             string
	ChangePassword string
}

// AuthController exposes the JSON authentication endpoints
type AuthController struct {
	auther *Auther
	Routes AuthControllerRoutes
	Logger Logger
}

type AuthControllerOption func(*AuthController)

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func WithControllerRoutes(routes AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) {
		c.Routes = routes
	}
}

// NewAuthController creates a controller with the default route table
func NewAuthController(auther *Auther, opts ...AuthControllerOption) *AuthController {
	controller := &AuthController{
		auther: auther,
		Logger: defLogger{},
		Routes: AuthControllerRoutes{
			Login:          "/auth/login",
			Refresh:        "/auth/refresh",
			Logout:         "/auth/logout",
			Me:             "/auth/me",
			ChangePassword: "/auth/change-password",
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(controller)
		}
	}

	return controller
}

// RegisterAuthRoutes mounts the auth endpoints on the given router
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Refresh, controller.RefreshPost)
	app.Post(controller.Routes.Logout, controller.RequireAuth, controller.LogoutPost)
	app.Get(controller.Routes.Me, controller.RequireAuth, controller.MeGet)
	app.Post(controller.Routes.ChangePassword, controller.RequireAuth, controller.ChangePasswordPost)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate will run validation rules
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate will validate the payload. Password strength itself is enforced
// by the core change flow; here we check presence and confirmation.
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.RuneLength(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.NewPassword)),
		),
	)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return goerrors.New("values must match", goerrors.CategoryValidation)
		}
		return nil
	}
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := ctx.BodyParser(payload); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "malformed request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	pair, err := a.auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		if IsAuthFailure(err) {
			// internal reason stays in the logs only
			a.Logger.Info("login refused: %s", FailureReason(err))
			return unauthorized(ctx, genericUnauthorized)
		}
		a.Logger.Error("login error: %v", err)
		return internalError(ctx)
	}

	return ctx.JSON(pair)
}

func (a *AuthController) RefreshPost(ctx *fiber.Ctx) error {
	payload := new(RefreshRequest)

	if err := ctx.BodyParser(payload); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "malformed request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	pair, err := a.auther.Refresh(ctx.Context(), payload.RefreshToken)
	if err != nil {
		if IsTokenFailure(err) || IsAuthFailure(err) {
			a.Logger.Info("refresh refused: %s", FailureReason(err))
			return unauthorized(ctx, "Invalid refresh token")
		}
		a.Logger.Error("refresh error: %v", err)
		return internalError(ctx)
	}

	return ctx.JSON(pair)
}

func (a *AuthController) LogoutPost(ctx *fiber.Ctx) error {
	member := MemberFromLocals(ctx)
	if member == nil {
		return unauthorized(ctx, "Could not validate credentials")
	}

	// Stateless tokens: the client discards them, nothing is revoked here
	return ctx.JSON(fiber.Map{
		"message":       "Successfully logged out user: " + member.Email,
		"logged_out_at": time.Now().UTC(),
	})
}

func (a *AuthController) MeGet(ctx *fiber.Ctx) error {
	member := MemberFromLocals(ctx)
	if member == nil {
		return unauthorized(ctx, "Could not validate credentials")
	}

	return ctx.JSON(fiber.Map{
		"id":            member.ID,
		"email":         member.Email,
		"first_name":    member.FirstName,
		"last_name":     member.LastName,
		"full_name":     member.FullName(),
		"member_status": member.Status,
		"admin_role":    member.Role,
		"is_admin":      len(ExpandRoles(member.Role)) > 0,
	})
}

func (a *AuthController) ChangePasswordPost(ctx *fiber.Ctx) error {
	member := MemberFromLocals(ctx)
	if member == nil {
		return unauthorized(ctx, "Could not validate credentials")
	}

	payload := new(ChangePasswordRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "malformed request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	err := a.auther.ChangePassword(ctx.Context(), member.ID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		var richErr *goerrors.Error
		switch {
		case goerrors.As(err, &richErr) && richErr.TextCode == "PASSWORD_POLICY":
			a.Logger.Debug("password policy refused change: %s", print.MaybePrettyJSON(richErr.Metadata))
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": richErr.Message,
			})
		case IsAuthFailure(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Current password is incorrect",
			})
		default:
			a.Logger.Error("change password error: %v", err)
			return internalError(ctx)
		}
	}

	return ctx.JSON(fiber.Map{
		"message":    "Password changed successfully",
		"changed_at": time.Now().UTC(),
	})
}

// RequireAuth extracts the bearer token, verifies it, resolves the member,
// and stores both in locals for downstream handlers.
func (a *AuthController) RequireAuth(ctx *fiber.Ctx) error {
	token := bearerToken(ctx)
	if token == "" {
		return unauthorized(ctx, "Could not validate credentials")
	}

	member, claims, err := a.auther.IdentityFromToken(ctx.Context(), token)
	if err != nil {
		a.Logger.Info("request auth refused: %s", FailureReason(err))
		return unauthorized(ctx, "Could not validate credentials")
	}

	ctx.Locals(LocalsMemberKey, member)
	ctx.Locals(LocalsClaimsKey, claims)
	ctx.SetUserContext(WithClaimsContext(WithContext(ctx.UserContext(), member), claims))

	return ctx.Next()
}

// RequireRolesMiddleware runs a role check against the authenticated member.
// Must be mounted after RequireAuth.
func (a *AuthController) RequireRolesMiddleware(roles ...AdminRole) fiber.Handler {
	check := RequireRoles(roles...)
	return func(ctx *fiber.Ctx) error {
		member := MemberFromLocals(ctx)
		if member == nil {
			return unauthorized(ctx, "Could not validate credentials")
		}

		if err := check.CheckMember(member); err != nil {
			return forbidden(ctx, err)
		}

		return ctx.Next()
	}
}

// MemberFromLocals returns the authenticated member stored by RequireAuth
func MemberFromLocals(ctx *fiber.Ctx) *Member {
	member, _ := ctx.Locals(LocalsMemberKey).(*Member)
	return member
}

// ClaimsFromLocals returns the verified claims stored by RequireAuth
func ClaimsFromLocals(ctx *fiber.Ctx) AuthClaims {
	claims, _ := ctx.Locals(LocalsClaimsKey).(AuthClaims)
	return claims
}

func bearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func unauthorized(ctx *fiber.Ctx, detail string) error {
	ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": detail,
	})
}

func forbidden(ctx *fiber.Ctx, err error) error {
	detail := "Access denied."
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		detail = richErr.Message
	}

	return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"detail": detail,
	})
}

func internalError(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "internal server error",
	})
}
