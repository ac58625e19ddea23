package security

import (
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fpm-inspections-core/internal/app/config"
)

// CORSHandler type spécifique pour Fx
type CORSHandler gin.HandlerFunc

// Front-ends locaux (Vite, Streamlit, React) en développement
var localhostPattern = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1):(3000|5173|8501|8080)$`)

// CORSMiddleware - origines configurées ; "*" les accepte toutes.
// Les ports locaux usuels ne sont acceptés qu'en développement.
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.GetCORS()
	development := appConfig.Environment == "development"

	allowAll := false
	allowed := make(map[string]struct{}, len(corsConfig.AllowedOrigins))
	for _, o := range corsConfig.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return CORSHandler(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowAll {
				return true
			}
			if development && localhostPattern.MatchString(origin) {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},

		AllowMethods: corsConfig.AllowedMethods,
		AllowHeaders: append(append([]string(nil), corsConfig.AllowedHeaders...), "X-Request-Id"),

		// Content-Disposition : nom de fichier des exports
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
			"X-Request-Id",
		},

		AllowCredentials: corsConfig.AllowCredentials && !allowAll,
		MaxAge:           time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
