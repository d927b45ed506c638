package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminKeyHeader заголовок с ключом доступа к админским операциям
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth проверяет заголовок X-Admin-Key для защищенных роутов
// Аутентификация конечных клиентов делается на уровне API Gateway,
// сюда приходят только внутренние и админские запросы
func AdminAuth(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(AdminKeyHeader)

			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "требуется действительный ключ администратора",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
