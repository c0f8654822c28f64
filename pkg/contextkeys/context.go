package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы будем хранить *gorm.DB в context
const DBContextKey = contextKey("db")

// UserContextKey - ключ для текущего пользователя (*models.User), который кладут auth middleware
const UserContextKey = contextKey("user")

// TokenClaimsContextKey - ключ для разобранных claims токена текущего запроса
const TokenClaimsContextKey = contextKey("token_claims")
