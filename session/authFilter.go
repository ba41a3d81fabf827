package session

import (
	"strings"

	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/persistence"

	"github.com/gin-gonic/gin"
)

const AuthHeader = "Authorization"
const bearerPrefix = "Bearer "

// AuthFilter gates every protected request. The bearer holding a role with the
// configured admin role id bypasses path checks entirely; everyone else is
// allowed only when the request path starts with one of the menu paths granted
// through their roles. The match is a raw prefix match: "/userx" passes for
// granted path "/user". Storage failures deny the request.
func AuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)

		db := persistence.ActiveDataSourceManager.GormDB(ctx.Request.Context())
		admin, err := authority.IsAdminByToken(db, token)
		if err != nil {
			panic(err)
		}
		if admin {
			InjectSessionIntoGinContext(ctx, &Session{Token: token})
			ctx.Next()
			return
		}

		s, err := FindByToken(db, token)
		if err != nil {
			panic(err)
		}
		if s == nil {
			panic(bizerror.ErrUnauthenticated)
		}

		paths, err := authority.MenuPathsByToken(db, token)
		if err != nil {
			panic(err)
		}

		uri := ctx.Request.URL.Path
		matched := false
		for _, p := range paths {
			if p != "" && strings.HasPrefix(uri, p) {
				matched = true
				break
			}
		}
		if !matched {
			panic(bizerror.ErrForbidden)
		}

		InjectSessionIntoGinContext(ctx, s)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	raw := ctx.GetHeader(AuthHeader)
	if raw == "" {
		panic(bizerror.ErrUnauthenticated)
	}
	// a missing "Bearer " prefix is tolerated, the remainder is the token
	token := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	if token == "" {
		panic(bizerror.ErrMalformedToken)
	}
	return token
}

func InjectSessionIntoGinContext(ctx *gin.Context, s *Session) {
	if s != nil && s.Token != "" {
		ctx.Set(KeySecCtx, s)
	}
}

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return nil
	}
	s, ok := value.(*Session)
	if !ok || s.Token == "" {
		return nil
	}
	return s
}
