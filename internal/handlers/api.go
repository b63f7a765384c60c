package handlers

import (
	"chillbills/internal/auth"
	"chillbills/internal/middleware"
	"chillbills/internal/store"

	"github.com/gin-gonic/gin"
)

// API holds the dependencies of every HTTP handler. Handlers receive their
// collaborators here instead of reaching for globals, so tests can swap in
// mocked storage.
type API struct {
	users              *store.UserStore
	expenses           *store.ExpenseStore
	tokens             *auth.TokenService
	adminClearPassword string
}

// New creates an API with its collaborators.
func New(users *store.UserStore, expenses *store.ExpenseStore, tokens *auth.TokenService, adminClearPassword string) *API {
	return &API{
		users:              users,
		expenses:           expenses,
		tokens:             tokens,
		adminClearPassword: adminClearPassword,
	}
}

// RegisterRoutes attaches all endpoints to the router.
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", a.HealthCheck)
	router.POST("/users", a.Register)
	router.POST("/token", a.Login)
	router.POST("/admin/clear-users", a.ClearUsers)

	authed := router.Group("/", middleware.Auth(a.tokens, a.users))
	authed.GET("/profile", a.Profile)
	authed.DELETE("/users/me", a.DeleteAccount)
	authed.POST("/expenses", a.CreateExpense)
	authed.GET("/expenses", a.ListExpenses)
	authed.GET("/expenses/:id", a.GetExpense)
	authed.PUT("/expenses/:id", a.UpdateExpense)
	authed.DELETE("/expenses/:id", a.DeleteExpense)
	authed.GET("/expense-insights", a.ExpenseInsights)
}
