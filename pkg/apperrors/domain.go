package apperrors

import "net/http"

// --- Auth ---

// ErrInvalidCredentials - неверный логин или пароль.
// Одна ошибка для "нет такого пользователя" и "неверный пароль".
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Неверное имя пользователя или пароль",
	http.StatusUnauthorized,
)

// ErrUnauthenticated - нет действующей сессии.
var ErrUnauthenticated = New(
	CodeUnauthorized,
	"auth",
	"Требуется вход в систему",
	http.StatusUnauthorized,
)

// ErrForbidden - операция доступна только администраторам.
var ErrForbidden = New(
	CodeForbidden,
	"auth",
	"Доступ запрещён",
	http.StatusForbidden,
)

// ErrInvalidToken - подпись, срок или сессия токена недействительны.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Сессия недействительна или истекла",
	http.StatusUnauthorized,
)

// --- Users ---

var ErrUserNotFound = New(
	CodeUserNotFound,
	"user",
	"Пользователь не найден",
	http.StatusNotFound,
)

var ErrUsernameTaken = New(
	CodeUsernameTaken,
	"user",
	"Пользователь с таким логином уже существует",
	http.StatusConflict,
)

// --- Registration ---

var ErrUsernameTooShort = New(
	CodeValidationFailed,
	"validation",
	"Логин должен быть не короче 6 символов",
	http.StatusBadRequest,
)

var ErrPasswordTooShort = New(
	CodeValidationFailed,
	"validation",
	"Пароль должен быть не короче 8 символов",
	http.StatusBadRequest,
)

var ErrInvalidGender = New(
	CodeValidationFailed,
	"validation",
	"Неверно выбран пол",
	http.StatusBadRequest,
)
