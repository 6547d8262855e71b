package app_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"sueta_backend/internal/models"
	"sueta_backend/internal/report"
	"sueta_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func registrationForm() url.Values {
	return url.Values{
		"first_name":  {"Нигяр"},
		"last_name":   {"Гасанова"},
		"middle_name": {"Фуадовна"},
		"birth_date":  {"2001-05-05"},
		"telegram":    {"@nigar"},
		"username":    {"nigar_g"},
		"password":    {"password123"},
		"gender":      {"female"},
	}
}

func countUsers(t *testing.T, ts *TestServer) int64 {
	t.Helper()
	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Count(&count).Error)
	return count
}

// birthDateForAge - дата рождения, при которой сегодня исполнилось age лет
func birthDateForAge(age int) string {
	return time.Now().AddDate(-age, 0, -1).Format("2006-01-02")
}

func TestStaticPages(t *testing.T) {
	ts := NewTestServer(t)

	for _, path := range []string{"/", "/admins", "/become_sponsor", "/contacts", "/merch", "/no_event",
		"/event/", "/event/party_menu", "/event/party_menu/food", "/event/party_menu/sets", "/event/terms"} {
		res, body := ts.Get(t, ts.Client, path)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Contains(t, body, "<html", path)
	}

	res, _ := ts.Get(t, ts.Client, "/assets/style.css")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := NewTestServer(t)

	res, body := ts.Get(t, ts.Client, "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestNotFound(t *testing.T) {
	ts := NewTestServer(t)

	res, body := ts.Get(t, ts.Client, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "404")

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/no/such/page", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	res, body = do(t, ts.Client, req)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, `"code":"NOT_FOUND"`)
}

func TestRegisterLoginDashboardLogout(t *testing.T) {
	ts := NewTestServer(t)
	client := ts.NewClient(t)

	res, body := ts.Get(t, client, "/event/register")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `name="username"`)

	res, _ = ts.PostForm(t, client, "/event/register", registrationForm())
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/event/login", res.Header.Get("Location"))

	var user models.User
	require.NoError(t, ts.DB.Where("username = ?", "nigar_g").First(&user).Error)
	assert.Equal(t, models.TicketStatusNotPaid, user.TicketStatus)
	assert.False(t, user.IsAdmin)

	// без сессии кабинет недоступен
	res, _ = ts.Get(t, client, "/event/dashboard")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/event/login", res.Header.Get("Location"))

	res, body = ts.PostForm(t, client, "/event/login", url.Values{"username": {"nigar_g"}, "password": {"wrong-password"}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Неверное имя пользователя или пароль")

	res, _ = ts.PostForm(t, client, "/event/login", url.Values{"username": {"nigar_g"}, "password": {"password123"}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/event/dashboard", res.Header.Get("Location"))

	res, body = ts.Get(t, client, "/event/dashboard")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Гасанова Нигяр Фуадовна")

	res, _ = ts.Get(t, client, "/event/logout")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/event/", res.Header.Get("Location"))

	res, _ = ts.Get(t, client, "/event/dashboard")
	assert.Equal(t, http.StatusFound, res.StatusCode)
}

func TestLogout_InvalidatesCopiedCookie(t *testing.T) {
	ts := NewTestServer(t)
	testutil.CreateUser(t, ts.DB, &models.User{Username: "cookie_user"}, "password123")
	client := ts.Login(t, "cookie_user", "password123")

	serverURL, err := url.Parse(ts.Server.URL)
	require.NoError(t, err)
	cookies := client.Jar.Cookies(serverURL)
	require.NotEmpty(t, cookies)

	// вторая копия той же cookie
	stolen := ts.NewClient(t)
	stolen.Jar.SetCookies(serverURL, cookies)

	res, _ := ts.Get(t, client, "/event/logout")
	require.Equal(t, http.StatusFound, res.StatusCode)

	res, _ = ts.Get(t, stolen, "/event/dashboard")
	assert.Equal(t, http.StatusFound, res.StatusCode, "после выхода старая cookie не работает")
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		message string
	}{
		{"short username", "username", "short", "Логин должен быть не короче 6 символов"},
		{"short password", "password", "1234567", "Пароль должен быть не короче 8 символов"},
		{"bad gender", "gender", "unknown", "Неверно выбран пол"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTestServer(t)
			form := registrationForm()
			form.Set(tt.field, tt.value)

			res, body := ts.PostForm(t, ts.Client, "/event/register", form)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.Contains(t, body, tt.message)
			assert.Contains(t, body, "Гасанова", "введенные поля сохраняются")
			assert.NotContains(t, body, "password123")
			assert.Zero(t, countUsers(t, ts))
		})
	}
}

func TestRegister_CyrillicPassword(t *testing.T) {
	ts := NewTestServer(t)

	form := registrationForm()
	form.Set("password", strings.Repeat("пароль", 7))
	res, body := ts.PostForm(t, ts.Client, "/event/register", form)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "72 байт")
	assert.Zero(t, countUsers(t, ts))

	password := strings.Repeat("ж", 36)
	form.Set("password", password)
	res, _ = ts.PostForm(t, ts.Client, "/event/register", form)
	require.Equal(t, http.StatusFound, res.StatusCode)

	client := ts.Login(t, "nigar_g", password)
	res, _ = ts.Get(t, client, "/event/dashboard")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := NewTestServer(t)

	res, _ := ts.PostForm(t, ts.Client, "/event/register", registrationForm())
	require.Equal(t, http.StatusFound, res.StatusCode)

	res, body := ts.PostForm(t, ts.Client, "/event/register", registrationForm())
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Пользователь с таким логином уже существует")
	assert.Equal(t, int64(1), countUsers(t, ts))
}

func TestBuyTicket(t *testing.T) {
	ts := NewTestServer(t)

	young := testutil.CreateUser(t, ts.DB, &models.User{Username: "young_one", BirthDate: birthDateForAge(17)}, "password123")
	eligible := testutil.CreateUser(t, ts.DB, &models.User{Username: "eligible", BirthDate: birthDateForAge(25)}, "password123")
	testutil.CreateUser(t, ts.DB, &models.User{Username: "paid_user", BirthDate: birthDateForAge(25), TicketStatus: models.TicketStatusPaid}, "password123")

	t.Run("requires session", func(t *testing.T) {
		res, _ := ts.Get(t, ts.NewClient(t), "/event/buy_ticket")
		assert.Equal(t, http.StatusFound, res.StatusCode)
	})

	t.Run("underage", func(t *testing.T) {
		res, body := ts.Get(t, ts.Login(t, "young_one", "password123"), "/event/buy_ticket")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Вам 17")
		assert.Equal(t, models.TicketStatusNotPaid, testutil.ReloadUser(t, ts.DB, young.ID).TicketStatus)
	})

	t.Run("issued", func(t *testing.T) {
		client := ts.Login(t, "eligible", "password123")
		res, body := ts.Get(t, client, "/event/buy_ticket")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "25 AZN")
		assert.Contains(t, body, "@Alyaskablya")

		qrPath := fmt.Sprintf("/static/qrcodes/user_%d.png", eligible.ID)
		assert.Contains(t, body, qrPath)

		res, _ = ts.Get(t, client, qrPath)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
		assert.Equal(t, models.TicketStatusNotPaid, testutil.ReloadUser(t, ts.DB, eligible.ID).TicketStatus)
	})

	t.Run("already purchased", func(t *testing.T) {
		res, body := ts.Get(t, ts.Login(t, "paid_user", "password123"), "/event/buy_ticket")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Билет уже куплен.")
	})
}

func TestAdminRoutes_Forbidden(t *testing.T) {
	ts := NewTestServer(t)
	user := testutil.CreateUser(t, ts.DB, &models.User{Username: "regular"}, "password123")
	member := ts.Login(t, "regular", "password123")
	anonymous := ts.NewClient(t)
	statusPath := "/event/ticket_status/" + strconv.Itoa(int(user.ID))

	for _, client := range []*http.Client{anonymous, member} {
		for _, path := range []string{statusPath, "/event/admin/users", "/export_excel"} {
			res, body := ts.Get(t, client, path)
			assert.Equal(t, http.StatusForbidden, res.StatusCode, path)
			assert.Contains(t, body, "403")
		}

		res, _ := ts.PostForm(t, client, "/event/confirm_payment/"+strconv.Itoa(int(user.ID)), nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}

	assert.Equal(t, models.TicketStatusNotPaid, testutil.ReloadUser(t, ts.DB, user.ID).TicketStatus)
}

func TestAdminPaymentFlow(t *testing.T) {
	ts := NewTestServer(t)
	admin := ts.CreateAdmin(t)
	user := testutil.CreateUser(t, ts.DB, &models.User{Username: "attendee", Telegram: "@attendee"}, "password123")
	id := strconv.Itoa(int(user.ID))

	res, body := ts.Get(t, admin, "/event/ticket_status/"+id)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "@attendee")
	assert.Contains(t, body, "Не оплачен")

	res, _ = ts.PostForm(t, admin, "/event/confirm_payment/"+id, nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/event/ticket_status/"+id, res.Header.Get("Location"))
	assert.Equal(t, models.TicketStatusPaid, testutil.ReloadUser(t, ts.DB, user.ID).TicketStatus)

	res, _ = ts.PostForm(t, admin, "/event/reject_payment/"+id, nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, models.TicketStatusRejected, testutil.ReloadUser(t, ts.DB, user.ID).TicketStatus)

	// неизвестный пользователь
	res, body = ts.Get(t, admin, "/event/ticket_status/9999")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Пользователь не найден")

	res, _ = ts.PostForm(t, admin, "/event/confirm_payment/9999", nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)

	// нечисловой id
	res, _ = ts.Get(t, admin, "/event/ticket_status/abc")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminUsersAndExport(t *testing.T) {
	ts := NewTestServer(t)
	admin := ts.CreateAdmin(t)
	testutil.CreateUser(t, ts.DB, &models.User{Username: "paid_a", LastName: "Оплатившая", TicketStatus: models.TicketStatusPaid}, "")
	testutil.CreateUser(t, ts.DB, &models.User{Username: "paid_b", TicketStatus: models.TicketStatusPaid}, "")
	testutil.CreateUser(t, ts.DB, &models.User{Username: "unpaid", LastName: "Неоплатившая"}, "")

	res, body := ts.Get(t, admin, "/event/admin/users?status=paid")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Оплатившая")
	assert.NotContains(t, body, "Неоплатившая")

	res, body = ts.Get(t, admin, "/event/admin/users?status=bogus")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Нет пользователей")
	assert.Contains(t, body, "Всего оплаченных билетов: 2")

	res, body = ts.Get(t, admin, "/export_excel?status=paid")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, report.ContentType, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "users.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "50", rows[4][4])
}
