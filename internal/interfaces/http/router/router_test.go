package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	t.Run("defaults to v1", func(t *testing.T) {
		r := NewRouter(gin.New())
		assert.Equal(t, "v1", r.apiVersion)
		assert.Empty(t, r.registrars)
	})

	t.Run("version prefix is configurable", func(t *testing.T) {
		r := NewRouter(gin.New(), WithAPIVersion("v2"))
		assert.Equal(t, "v2", r.apiVersion)
	})
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	cartGroup := NewDomainGroup("cart", "/cart")
	cartGroup.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "cart")
	})

	orderGroup := NewDomainGroup("orders", "/orders")
	orderGroup.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "orders")
	})

	r.Register(cartGroup).Register(orderGroup)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/cart")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart", w.Body.String())

	w = serve(engine, "GET", "/api/v1/orders")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("declares all supported methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("addresses", "/addresses")
		g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) }).
			POST("", func(c *gin.Context) { c.Status(http.StatusCreated) }).
			PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
			DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, "GET", "/api/v1/addresses").Code)
		assert.Equal(t, http.StatusCreated, serve(engine, "POST", "/api/v1/addresses").Code)
		assert.Equal(t, http.StatusOK, serve(engine, "PUT", "/api/v1/addresses/a1").Code)
		assert.Equal(t, http.StatusNoContent, serve(engine, "DELETE", "/api/v1/addresses/a1").Code)
	})

	t.Run("group middleware runs before its handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")
		g.Use(func(c *gin.Context) {
			c.Header("X-Guard", "passed")
			c.Next()
		})
		g.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/admin/orders")
		assert.Equal(t, "passed", w.Header().Get("X-Guard"))
	})

	t.Run("subgroups mount under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("orders", "/orders")

		slips := g.Group("slips", "/:id/slips")
		slips.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("id"))
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/orders/o-77/slips")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "o-77", w.Body.String())
	})
}
