// cmd/storefront/main.go
//
// The storefront is a thin server-rendered frontend. It owns no data: every
// page is assembled from API responses fetched through the shared client.
package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/brightcart/storefront/internal/config"
	"github.com/brightcart/storefront/pkg/apiclient"
)

const pageTemplates = `
{{define "layout_head"}}
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{.Title}} — Brightcart</title>
	<style>
		body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
		.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
		.card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; }
		.price { font-weight: bold; }
		.oos { color: #a00; }
		nav a { margin-right: 1rem; }
	</style>
</head>
<body>
<nav><a href="/">Products</a></nav>
{{end}}

{{define "products"}}
{{template "layout_head" .}}
<h1>Products</h1>
<div class="grid">
	{{range .Products}}
	<div class="card">
		<h3><a href="/products/{{.Slug}}">{{.Title}}</a></h3>
		<p class="price">{{formatPrice .PriceCents .Currency}}</p>
		{{if not .InStock}}<p class="oos">Out of stock</p>{{end}}
	</div>
	{{else}}
	<p>No products yet.</p>
	{{end}}
</div>
</body>
</html>
{{end}}

{{define "product"}}
{{template "layout_head" .}}
<h1>{{.Product.Title}}</h1>
{{if .Product.ImageURL}}<img src="{{.Product.ImageURL}}" alt="{{.Product.Title}}" width="320">{{end}}
<p>{{.Product.Description}}</p>
<p class="price">{{formatPrice .Product.PriceCents .Product.Currency}}</p>
{{if .Product.InStock}}<p>In stock</p>{{else}}<p class="oos">Out of stock</p>{{end}}
</body>
</html>
{{end}}

{{define "error"}}
{{template "layout_head" .}}
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
{{end}}
`

type storefront struct {
	api *apiclient.Client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	api, err := apiclient.New(apiclient.Config{
		BaseURL:    cfg.Client.BaseURL,
		Timeout:    time.Duration(cfg.Client.TimeoutSeconds) * time.Second,
		RetryLimit: cfg.Client.RetryLimit,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create API client")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &storefront{api: api}

	tmpl := template.Must(template.New("pages").Funcs(template.FuncMap{
		"formatPrice": formatPrice,
	}).Parse(pageTemplates))

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", app.productListPage)
	r.GET("/products/:slug", app.productPage)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	port := getEnv("STOREFRONT_PORT", "3000")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.WithField("port", port).Info("Starting storefront")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start storefront")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down storefront...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Storefront forced to shutdown")
	}
}

func (s *storefront) productListPage(c *gin.Context) {
	products, _, err := s.api.ListProducts(c.Request.Context(), apiclient.ListProductsOptions{Limit: 48})
	if err != nil {
		s.errorPage(c, err)
		return
	}

	c.HTML(http.StatusOK, "products", gin.H{
		"Title":    "Products",
		"Products": products,
	})
}

func (s *storefront) productPage(c *gin.Context) {
	slug := c.Param("slug")

	product, err := s.api.GetProduct(c.Request.Context(), slug)
	if err != nil {
		s.errorPage(c, err)
		return
	}
	if product == nil {
		c.HTML(http.StatusNotFound, "error", gin.H{
			"Title":   "Not found",
			"Message": "We couldn't find that product.",
		})
		return
	}

	c.HTML(http.StatusOK, "product", gin.H{
		"Title":   product.Title,
		"Product": product,
	})
}

func (s *storefront) errorPage(c *gin.Context, err error) {
	logrus.WithError(err).Error("Storefront request failed")
	c.HTML(http.StatusBadGateway, "error", gin.H{
		"Title":   "Something went wrong",
		"Message": "The store is temporarily unavailable. Please try again shortly.",
	})
}

func formatPrice(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
