package internal

import (
	"os"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			AllowedOrigins:    "http://localhost:3000, https://dashboard.example.com",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			Source:       "postgres://localhost:5432/timekeeping",
		},
		Security: SecurityConfig{
			JWTSecret:           "0123456789abcdef0123456789abcdef",
			AccessTokenDuration: 8 * time.Hour,
			BCryptCost:          10,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
			Logging: LoggingConfig{Env: "development", Level: "info"},
		},
	}
}

var _ = ginkgo.Describe("Config", func() {
	ginkgo.It("should accept a complete configuration", func() {
		gomega.Expect(validConfig().Validate()).To(gomega.Succeed())
	})

	ginkgo.It("should name every struct rule that fails", func() {
		cfg := validConfig()
		cfg.Server.Port = 0
		cfg.Security.JWTSecret = "short"
		cfg.Observability.Logging.Level = "verbose"

		err := cfg.Validate()

		gomega.Expect(err).To(gomega.HaveOccurred())
		gomega.Expect(err.Error()).To(gomega.ContainSubstring("Config.Server.Port failed on required"))
		gomega.Expect(err.Error()).To(gomega.ContainSubstring("Config.Security.JWTSecret failed on min"))
		gomega.Expect(err.Error()).To(gomega.ContainSubstring("Config.Observability.Logging.Level failed on oneof"))
	})

	ginkgo.It("should require a metrics path only when metrics are on", func() {
		cfg := validConfig()
		cfg.Observability.Metrics.Path = ""
		gomega.Expect(cfg.Validate()).ToNot(gomega.Succeed())

		cfg.Observability.Metrics.Enabled = false
		gomega.Expect(cfg.Validate()).To(gomega.Succeed())
	})

	ginkgo.It("should reject more idle than open connections", func() {
		cfg := validConfig()
		cfg.Database.MaxIdleConns = 20

		err := cfg.Validate()

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("max_idle_conns cannot be greater than max_open_conns")))
	})

	ginkgo.It("should reject a read timeout shorter than the header timeout", func() {
		cfg := validConfig()
		cfg.Server.ReadTimeout = time.Second

		gomega.Expect(cfg.Validate()).To(gomega.MatchError(gomega.ContainSubstring("read_timeout must be >= read_header_timeout")))
	})

	ginkgo.It("should split and trim allowed origins", func() {
		cfg := validConfig()
		gomega.Expect(cfg.Server.Origins()).To(gomega.Equal([]string{"http://localhost:3000", "https://dashboard.example.com"}))

		cfg.Server.AllowedOrigins = ""
		gomega.Expect(cfg.Server.Origins()).To(gomega.Equal([]string{"*"}))
	})

	ginkgo.It("should default the audit list limit", func() {
		gomega.Expect((&AuditConfig{}).AuditListLimit()).To(gomega.Equal(200))
		gomega.Expect((&AuditConfig{ListLimit: 50}).AuditListLimit()).To(gomega.Equal(50))
	})

	ginkgo.Describe("LoadConfigFromEnv", func() {
		ginkgo.It("should read overrides and fall back on defaults", func() {
			for key, value := range map[string]string{
				"PORT":              "9090",
				"READ_TIMEOUT":      "20s",
				"DB_MAX_OPEN_CONNS": "not-a-number",
				"AUDIT_LIST_LIMIT":  "75",
			} {
				gomega.Expect(os.Setenv(key, value)).To(gomega.Succeed())
				ginkgo.DeferCleanup(os.Unsetenv, key)
			}

			cfg := LoadConfigFromEnv()

			gomega.Expect(cfg.Server.Port).To(gomega.Equal(9090))
			gomega.Expect(cfg.Server.ReadTimeout).To(gomega.Equal(20 * time.Second))
			gomega.Expect(cfg.Database.MaxOpenConns).To(gomega.Equal(25))
			gomega.Expect(cfg.Audit.ListLimit).To(gomega.Equal(75))
		})
	})
})
