// Package api implements the pending expense JSON endpoint.
//
// A request is a POST with a JSON body { "action": "login" | "getData", ... }. The Handler is
// transport agnostic: Lambda adapts AWS Lambda/Netlify function events and Routes mounts it
// on a gin router.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pending-expense/pending-expense-app/config"
	"github.com/pending-expense/pending-expense-app/expenses"
)

const (
	MsgLoginOK       = "Login successful"
	MsgLoginFailed   = "Cost Center หรือรหัสผ่านไม่ถูกต้อง"
	MsgInvalidAction = "Invalid action"
	MsgPreflight     = "Successful preflight call."
	MsgUnauthorized  = "Unauthorized"
	MsgServerError   = "เกิดข้อผิดพลาดภายใน Server: "
)

// Connector opens the worksheet source for a single request.
type Connector func(ctx context.Context, c *config.Config) (expenses.Source, error)

type Handler struct {
	config  *config.Config
	connect Connector
	logger  *zap.Logger
	now     func() time.Time
}

type Request struct {
	Method string
	Header http.Header
	Body   []byte
}

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

type payload struct {
	Action     text `json:"action"`
	Username   text `json:"username"`
	Password   text `json:"password"`
	CostCenter text `json:"costCenter"`
}

type loginReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type dataReply struct {
	Success    bool              `json:"success"`
	Data       []expenses.Record `json:"data"`
	LastUpdate string            `json:"lastUpdate"`
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type preflight struct {
	Message string `json:"message"`
}

func NewHandler(c *config.Config, connect Connector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		config:  c,
		connect: connect,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle dispatches a single request. It never fails: errors are returned as a JSON
// response with 'success' set to false.
func (h *Handler) Handle(ctx context.Context, rq Request) (response Response) {
	start := time.Now()
	log := h.logger.With(zap.String("request", uuid.NewString()))
	action := ""

	defer func() {
		if v := recover(); v != nil {
			log.Error("request panicked", zap.Any("panic", v), zap.Stack("stack"))
			response = h.reply(http.StatusInternalServerError, failure{
				Success: false,
				Message: MsgServerError + fmt.Sprintf("%v", v),
			})
		}

		log.Info("request",
			zap.String("method", rq.Method),
			zap.String("action", action),
			zap.Int("status", response.StatusCode),
			zap.Duration("duration", time.Since(start)))
	}()

	if rq.Method == http.MethodOptions {
		return h.reply(http.StatusOK, preflight{Message: MsgPreflight})
	}

	var p *payload
	if err := json.Unmarshal(rq.Body, &p); err != nil {
		return h.failed(log, fmt.Errorf("Invalid request body (%w)", err))
	} else if p == nil {
		return h.failed(log, fmt.Errorf("Invalid request body (null)"))
	}

	action = string(p.Action)

	switch action {
	case "login":
		return h.login(ctx, log, *p)

	case "getData":
		return h.getData(ctx, log, rq.Header, *p)

	default:
		return h.reply(http.StatusBadRequest, failure{
			Success: false,
			Message: MsgInvalidAction,
		})
	}
}

func (h *Handler) login(ctx context.Context, log *zap.Logger, p payload) Response {
	ok, token, err := h.Authenticate(ctx, string(p.Username), string(p.Password))
	if err != nil {
		return h.failed(log, err)
	} else if !ok {
		log.Info("login failed", zap.String("username", strings.TrimSpace(string(p.Username))))

		return h.reply(http.StatusUnauthorized, loginReply{
			Success: false,
			Message: MsgLoginFailed,
		})
	}

	return h.reply(http.StatusOK, loginReply{
		Success: true,
		Message: MsgLoginOK,
		Token:   token,
	})
}

func (h *Handler) getData(ctx context.Context, log *zap.Logger, header http.Header, p payload) Response {
	costCenter := string(p.CostCenter)

	if h.sessions() && !h.authorised(header, costCenter) {
		log.Warn("unauthorised getData", zap.String("cost-center", costCenter))

		return h.reply(http.StatusUnauthorized, failure{
			Success: false,
			Message: MsgUnauthorized,
		})
	}

	visible, err := h.Expenses(ctx, costCenter)
	if err != nil {
		return h.failed(log, err)
	}

	log.Debug("getData",
		zap.String("cost-center", costCenter),
		zap.Strings("access", visible.Access),
		zap.Int("records", len(visible.Records)))

	return h.reply(http.StatusOK, dataReply{
		Success:    true,
		Data:       visible.Records,
		LastUpdate: visible.LastUpdate,
	})
}

// Authenticate checks the credentials against the user sheet. If session tokens are enabled
// a successful login also returns a token issued to the stored cost center.
func (h *Handler) Authenticate(ctx context.Context, username, password string) (bool, string, error) {
	source, err := h.connect(ctx, h.config)
	if err != nil {
		return false, "", err
	}

	users, err := source.Table(ctx, h.config.Sheets.UserSheet())
	if err != nil {
		return false, "", err
	}

	columns := h.config.Users.Columns()
	record, ok := expenses.FindUser(username, password, users, columns)
	if !ok {
		return false, "", nil
	}

	if !h.sessions() {
		return true, "", nil
	}

	token, err := h.issue(expenses.Username(record, users, columns))
	if err != nil {
		return false, "", err
	}

	return true, token, nil
}

// Visible is the set of expense records a cost center may see.
type Visible struct {
	Access     expenses.AccessSet
	Header     []string
	Records    []expenses.Record
	LastUpdate string
}

// Expenses resolves the cost centers accessible to the identity and returns the pending
// expense records for those cost centers, sorted and projected as configured.
func (h *Handler) Expenses(ctx context.Context, costCenter string) (*Visible, error) {
	source, err := h.connect(ctx, h.config)
	if err != nil {
		return nil, err
	}

	permissions, err := source.Table(ctx, h.config.Sheets.PermissionSheet())
	if err != nil {
		return nil, err
	}

	access := expenses.ResolveAccessibleCostCenters(costCenter, permissions, h.config.Permissions.Columns())

	table, err := source.Table(ctx, h.config.Sheets.ExpenseSheet())
	if err != nil {
		return nil, err
	}

	lastUpdate, err := h.lastUpdate(ctx, source)
	if err != nil {
		return nil, err
	}

	records, err := expenses.FilterVisibleExpenses(table, access, h.config.Expenses.Statuses, h.config.Expenses.Headers())
	if err != nil {
		return nil, err
	}

	if column := h.config.Expenses.SortBy; column != "" {
		records = expenses.SortByDate(records, column)
	}

	columns := h.config.Expenses.Display()

	return &Visible{
		Access:     access,
		Header:     expenses.ProjectedHeader(table.Header, columns),
		Records:    expenses.ProjectColumns(records, table.Header, columns),
		LastUpdate: lastUpdate,
	}, nil
}

func (h *Handler) lastUpdate(ctx context.Context, source expenses.Source) (string, error) {
	spreadsheet := h.config.Sheets.ExpenseSheet()
	conf := h.config.Expenses.LastUpdate

	switch conf.Source {
	case config.SOURCE_DRIVE:
		modified, err := source.Modified(ctx, spreadsheet)
		if err != nil {
			return "", err
		}

		return modified.In(time.Local).Format(conf.Format), nil

	default:
		v, err := source.Cell(ctx, spreadsheet, conf.Cell)
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(v) == "" {
			return conf.Default, nil
		}

		return v, nil
	}
}

func (h *Handler) failed(log *zap.Logger, err error) Response {
	log.Error("request failed", zap.Error(err))

	return h.reply(http.StatusInternalServerError, failure{
		Success: false,
		Message: MsgServerError + err.Error(),
	})
}

func (h *Handler) reply(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"message":"` + strings.TrimSpace(MsgServerError) + `"}`)
	}

	return Response{
		StatusCode: status,
		Headers:    h.headers(),
		Body:       body,
	}
}

func (h *Handler) headers() map[string]string {
	allowed := "Content-Type"
	if h.sessions() {
		allowed = "Content-Type, Authorization"
	}

	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": allowed,
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}

// text is a request field that also accepts JSON numbers and booleans, which are taken
// verbatim. null decodes as "".
type text string

func (t *text) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err == nil {
		*t = text(s)
		return nil
	}

	switch v := strings.TrimSpace(string(bytes)); {
	case v == "null":
		*t = ""

	case strings.HasPrefix(v, "{"), strings.HasPrefix(v, "["):
		return fmt.Errorf("invalid value %s", v)

	default:
		*t = text(v)
	}

	return nil
}
