package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"agrimart/internal/domain"
	"agrimart/internal/service/order"
	"agrimart/internal/service/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "agrimart"

type catalogService interface {
	ListProducts(ctx context.Context) []domain.Product
}

type cartService interface {
	ListLines(ctx context.Context, session domain.SessionID) ([]domain.CartLine, error)
	AddOrIncrement(ctx context.Context, session domain.SessionID, productID string, quantity int) error
	SetQuantity(ctx context.Context, lineID string, quantity int) error
	RemoveLine(ctx context.Context, lineID string) error
}

type orderService interface {
	PlaceOrder(ctx context.Context, session domain.SessionID, lines []domain.CartLine, in order.CheckoutInput) (string, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

// Deps groups the services and settings the router needs.
type Deps struct {
	DB       pinger
	Catalog  catalogService
	Cart     cartService
	Orders   orderService
	Sessions *session.Provider

	SessionSecret    string
	CookieSecure     bool
	CORSAllowOrigins []string
	CurrencySymbol   string
}

type handler struct {
	catalog catalogService
	cart    cartService
	orders  orderService
	money   moneyFormatter
	logger  *log.Logger
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   400 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   deps.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	provider := deps.Sessions
	if provider == nil {
		provider = session.New(logger)
	}

	h := &handler{
		catalog: deps.Catalog,
		cart:    deps.Cart,
		orders:  deps.Orders,
		money:   newMoneyFormatter(deps.CurrencySymbol),
		logger:  logger,
	}

	router.GET("/products", h.listProducts)
	router.GET("/orders/:orderId", h.getOrder)

	shop := router.Group("/")
	shop.Use(sessions.Sessions(sessionCookieName, store), sessionMiddleware(provider))
	shop.GET("/cart", h.getCart)
	shop.POST("/cart/lines", h.addLine)
	shop.PATCH("/cart/lines/:lineId", h.setQuantity)
	shop.DELETE("/cart/lines/:lineId", h.removeLine)
	shop.POST("/checkout", h.checkout)

	return router
}
