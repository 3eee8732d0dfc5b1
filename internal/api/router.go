package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"carehome-backend/config"
	"carehome-backend/internal/facility"
	"carehome-backend/internal/mw"
	"carehome-backend/internal/notification"
	"carehome-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(core *facility.CareHome, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()
	r.Use(mw.Metrics())

	handler := NewHandler(core, s, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Occupancy graph
		api.GET("/wards", caching, handler.GetWards)

		// Residents
		api.POST("/residents", handler.PostResident)
		api.GET("/residents", handler.GetResidents)
		api.GET("/beds/:bed_id/resident", handler.GetResidentDetails)

		// Bed operations
		api.POST("/beds/:bed_id/assign", handler.PostAssign)
		api.POST("/beds/move", handler.PostMove)

		// Prescriptions
		api.POST("/beds/:bed_id/prescription", handler.PostAttachPrescription)
		api.GET("/residents/:resident_id/prescription", handler.GetPrescription)
		api.POST("/residents/:resident_id/prescription/items", handler.PostPrescriptionItem)
		api.POST("/residents/:resident_id/prescription/administrations", handler.PostAdministration)

		// Duty roster
		api.GET("/schedule", handler.GetSchedule)
		api.POST("/schedule/shifts", handler.PostShift)
		api.PUT("/schedule/doctor-presence", handler.PutDoctorPresence)
		api.GET("/compliance", handler.GetCompliance)

		// Audit log
		api.GET("/logs", handler.GetLogs)

		// Persistence
		api.POST("/snapshot", handler.PostSnapshot)
		api.POST("/snapshot/restore", handler.PostRestore)

		// Push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
