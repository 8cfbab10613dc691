package session

import (
	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// Gate suppresses protected views when no session token is present.
//
// This is a presence check only and never a security boundary. The backend
// authorizes every call, and a stale token is handled by the client's 401 path.
type Gate struct {
	tokens    TokenReader
	navigator apiclient.Navigator
}

func NewGate(tokens TokenReader, navigator apiclient.Navigator) *Gate {
	return &Gate{tokens: tokens, navigator: navigator}
}

// EnsureAuthenticated returns false, after navigating to the role's login page,
// when no token is stored for role.
func (g *Gate) EnsureAuthenticated(role tokenstore.Role) bool {
	if _, ok := g.tokens.Get(role); ok {
		return true
	}
	if g.navigator != nil {
		g.navigator.Navigate(role.LoginPath())
	}
	return false
}
