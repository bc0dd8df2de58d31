package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/config"
	"github.com/medicmanager/clinic-api/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Collector,
	appointments *AppointmentHandler,
	practitioners *PractitionerHandler,
	patients *PatientHandler,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Metrics(m))
	r.Use(CORS(cfg.CORS))
	r.Use(RateLimit(cfg.RateLimit))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	{
		api.POST("/create-appointment", appointments.Create)
		api.GET("/appointments", appointments.List)
		api.GET("/appointment/:id", appointments.GetByID)
		api.PUT("/update-appointment", appointments.Update)
		api.DELETE("/delete-appointment/:id", appointments.Delete)

		api.POST("/create-practitioner", practitioners.Create)
		api.GET("/practitioners", practitioners.List)
		api.GET("/practitioner/:id", practitioners.GetByID)
		api.PUT("/update-practitioner", practitioners.Update)
		api.DELETE("/delete-practitioner/:id", practitioners.Delete)

		api.POST("/create-patient", patients.Create)
		api.GET("/patients", patients.List)
		api.GET("/patient/:id", patients.GetByID)
		api.PUT("/update-patient", patients.Update)
		api.DELETE("/delete-patient/:id", patients.Delete)
	}

	return r
}
