package contextkeys

// CurrentUserKey - ключ gin-контекста, по которому лежит *models.User текущей сессии
const CurrentUserKey = "current_user"

// SessionTokenKey - токен сессии из cookie (нужен для выхода)
const SessionTokenKey = "session_token"

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"
