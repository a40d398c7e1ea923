package graph

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the GraphQL endpoint (with GraphiQL enabled) on /graphql.
func NewRouter(schema graphql.Schema, log *logrus.Logger) http.Handler {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	r := mux.NewRouter()
	r.Handle("/graphql", requestLogger(log, h))
	return r
}

func requestLogger(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"duration": time.Since(start),
		}).Info("request handled")
	})
}
