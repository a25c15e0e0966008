package auth

import "context"

var memberCtxKey = &contextKey{"member"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Member in the given context
func WithContext(r context.Context, member *Member) context.Context {
	return context.WithValue(r, memberCtxKey, member)
}

// FromContext finds the member from the context.
func FromContext(ctx context.Context) (*Member, bool) {
	raw, ok := ctx.Value(memberCtxKey).(*Member)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// HasRole is a convenience check against the expanded roles of the member in
// the context.
func HasRole(ctx context.Context, role AdminRole) bool {
	member, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ExpandRoles(member.Role).Has(role)
}
