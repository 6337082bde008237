package main

import (
	"log"
	"net/http"

	"serein-be/internal/address"
	"serein-be/internal/cache"
	"serein-be/internal/cart"
	"serein-be/internal/category"
	"serein-be/internal/checkout"
	"serein-be/internal/config"
	"serein-be/internal/coupon"
	"serein-be/internal/db"
	"serein-be/internal/httpapi"
	"serein-be/internal/logger"
	"serein-be/internal/order"
	"serein-be/internal/product"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	// Cart cache is optional; without REDIS_ADDR every read hits Postgres.
	var cartCache cart.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		cartCache = cache.NewRedisCartCache(client)
	}

	productRepo := product.NewRepository(database)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, couponSvc, cartCache)

	addressRepo := address.NewRepository(database)

	checkoutRepo := checkout.NewRepository(database)
	checkoutSvc := checkout.NewService(checkoutRepo, cartSvc, categorySvc, addressRepo, cfg.Currency)

	orderRepo := order.NewRepository(database, productRepo, cartRepo, couponRepo)
	orderSvc := order.NewService(orderRepo)

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:     httpapi.NewCartHandler(cartSvc),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc, orderSvc),
		Category: httpapi.NewCategoryHandler(categorySvc),
		Coupon:   httpapi.NewCouponHandler(couponSvc),
		Order:    httpapi.NewOrderHandler(orderSvc),
		Address:  httpapi.NewAddressHandler(addressRepo),
	})

	log.Printf("🚀 Checkout API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
