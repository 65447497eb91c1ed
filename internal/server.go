package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cast"
	"hotelbooking/config"
	"hotelbooking/entity"
	"hotelbooking/services"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	registerRoute  = "/register"
	loginRoute     = "/login"
	logoutRoute    = "/logout"
	avatarRoute    = "/avatar"
	adminLogin     = "/admin/login"
	adminRoomTypes = "/admin/room-types"
	adminRooms     = "/admin/rooms"
	roomsRoute     = "/rooms"
	imageRoute     = "/images/:id"
	bookingRoute   = "/booking/:room_id"
	createPayment  = "/create_payment"
	paymentReturn  = "/vnpay_return"
	metricsRoute   = "/metrics"
)

const defaultPaymentAmount = "1000000"

type Server struct {
	conf           *config.Config
	httpServer     *http.Server
	accounts       services.Accounts
	catalog        services.Catalog
	bookings       services.Bookings
	payments       services.Payments
	sessions       services.SessionStore
	proxies        *TrustedProxies
	metrics        *Metrics
	metricsHandler http.Handler
	logger         services.LogHandler
}

type errorResponse struct {
	Error string `json:"error"`
}

type paymentResponse struct {
	Status        string `json:"status"`
	Code          string `json:"code,omitempty"`
	TxnRef        string `json:"txn_ref,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	TransactionNo string `json:"transaction_no,omitempty"`
	Message       string `json:"message,omitempty"`
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: discard,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(registerRoute, s.handle(registerRoute, s.register))
	router.POST(loginRoute, s.handle(loginRoute, s.login))
	router.GET(logoutRoute, s.handle(logoutRoute, s.logout))
	router.POST(avatarRoute, s.handle(avatarRoute, s.customer(s.uploadAvatar)))
	router.POST(adminLogin, s.handle(adminLogin, s.adminLogin))
	router.GET(adminRoomTypes, s.handle(adminRoomTypes, s.admin(s.listRoomTypes)))
	router.POST(adminRoomTypes, s.handle(adminRoomTypes, s.admin(s.addRoomType)))
	router.POST(adminRooms, s.handle(adminRooms, s.admin(s.addRoom)))
	router.GET(roomsRoute, s.handle(roomsRoute, s.listRooms))
	router.GET(imageRoute, s.handle(imageRoute, s.image))
	router.GET(bookingRoute, s.handle(bookingRoute, s.quote))
	router.POST(bookingRoute, s.handle(bookingRoute, s.book))
	router.GET(createPayment, s.handle(createPayment, s.createPayment))
	router.GET(paymentReturn, s.handle(paymentReturn, s.paymentReturn))
	router.GET(metricsRoute, s.metricsEndpoint)
}

func (s *Server) SetAccounts(accounts services.Accounts) {
	s.accounts = accounts
}

func (s *Server) SetCatalog(catalog services.Catalog) {
	s.catalog = catalog
}

func (s *Server) SetBookings(bookings services.Bookings) {
	s.bookings = bookings
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetSessionStore(sessions services.SessionStore) {
	s.sessions = sessions
}

func (s *Server) SetTrustedProxies(proxies *TrustedProxies) {
	s.proxies = proxies
}

func (s *Server) SetMetrics(metrics *Metrics, handler http.Handler) {
	s.metrics = metrics
	s.metricsHandler = handler
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handle attaches a request id to the context and records request metrics.
func (s *Server) handle(route string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		started := time.Now()
		ctx := WithRequestID(r.Context(), requestID(r))
		w.Header().Set(requestIDHeader, GetRequestID(ctx))
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r.WithContext(ctx), ps)
		s.metrics.RecordRequest(route, recorder.status, time.Since(started))
	}
}

func (s *Server) metricsEndpoint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.metricsHandler == nil {
		http.NotFound(w, r)
		return
	}
	s.metricsHandler.ServeHTTP(w, r)
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) *entity.Session {
	session, _ := ctx.Value(sessionKey{}).(*entity.Session)
	return session
}

func (s *Server) session(r *http.Request) *entity.Session {
	if s.sessions == nil {
		return nil
	}
	cookie, err := r.Cookie(s.conf.Session.Cookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := s.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] get session", GetRequestID(r.Context())), err)
		return nil
	}
	return session
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, session *entity.Session) error {
	if s.sessions == nil {
		return fmt.Errorf("session store not configured")
	}
	session.Id = uuid.NewString()
	session.Created = time.Now()
	if err := s.sessions.Save(r.Context(), session); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.conf.Session.Cookie,
		Value:    session.Id,
		Path:     "/",
		MaxAge:   int(s.conf.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.conf.Listen.TLS,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// customer passes only requests carrying a customer session.
func (s *Server) customer(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		session := s.session(r)
		if session == nil || session.IsAdmin {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)), ps)
	}
}

// admin passes only requests carrying a staff session.
func (s *Server) admin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		session := s.session(r)
		if session == nil || !session.IsAdmin {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "admin login required"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)), ps)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("write response", err)
	}
}

// fail writes a service error; details of internal errors stay in the log.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	reqID := GetRequestID(r.Context())
	status := httpStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error(fmt.Sprintf("[%s] %s", reqID, action), err)
		message = http.StatusText(status)
	} else {
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, action, err))
	}
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) maxUpload() int64 {
	if s.conf.Upload.MaxSize > 0 {
		return s.conf.Upload.MaxSize
	}
	return 5 << 20
}

// formValues reads a JSON, multipart or url-encoded request body into a flat map.
func (s *Server) formValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	values := make(map[string]string)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: decode body: %v", ErrInvalidInput, err)
		}
		for key, value := range body {
			text, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s", ErrInvalidInput, key)
			}
			values[key] = strings.TrimSpace(text)
		}
		return values, nil
	}

	var err error
	if strings.HasPrefix(contentType, "multipart/form-data") {
		err = r.ParseMultipartForm(s.maxUpload())
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse form: %v", ErrInvalidInput, err)
	}
	for key := range r.Form {
		values[key] = strings.TrimSpace(r.Form.Get(key))
	}
	return values, nil
}

// parseAmount reads a whole, non-negative amount in major currency units.
// Plain digit strings are parsed as integers so large amounts keep every
// digit; other forms such as "1e6" go through a float.
func parseAmount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if isDigits(value) {
		// cast reads a leading zero as an octal prefix
		digits := strings.TrimLeft(value, "0")
		if digits == "" {
			digits = "0"
		}
		number, err := cast.ToInt64E(digits)
		if err != nil {
			return 0, fmt.Errorf("%w: amount %q is out of range", ErrInvalidInput, value)
		}
		return number, nil
	}

	number, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, value)
	}
	if number < 0 || number != math.Trunc(number) || number >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidInput, value)
	}
	return int64(number), nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) returnUrl(r *http.Request) string {
	if s.conf.Merchant.ReturnUrl != "" {
		return s.conf.Merchant.ReturnUrl
	}
	return fmt.Sprintf("%s://%s%s", s.proxies.Scheme(r), r.Host, paymentReturn)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "register", err)
		return
	}
	customer := &entity.Customer{
		FullName: values["full_name"],
		Email:    values["email"],
		Phone:    values["phone"],
		Address:  values["address"],
		IdNumber: values["id_number"],
	}
	id, err := s.accounts.Register(r.Context(), customer, values["password"])
	if err != nil {
		s.fail(w, r, "register", err)
		return
	}
	customer.Id = id
	s.writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "login", err)
		return
	}
	customer, err := s.accounts.Login(r.Context(), values["email"], values["password"])
	if err != nil {
		s.fail(w, r, "login", err)
		return
	}
	session := &entity.Session{
		UserId: customer.Id,
		Email:  customer.Email,
		Avatar: customer.Avatar,
	}
	if err = s.startSession(w, r, session); err != nil {
		s.fail(w, r, "login session", err)
		return
	}
	s.logger.Info(fmt.Sprintf("[%s] customer login: %s", GetRequestID(r.Context()), secret(customer.Email)))
	s.writeJSON(w, http.StatusOK, customer)
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "admin login", err)
		return
	}
	staff, err := s.accounts.AdminLogin(r.Context(), values["email"], values["password"])
	if err != nil {
		s.fail(w, r, "admin login", err)
		return
	}
	session := &entity.Session{
		UserId:  staff.Id,
		Email:   staff.Email,
		IsAdmin: true,
	}
	if err = s.startSession(w, r, session); err != nil {
		s.fail(w, r, "admin session", err)
		return
	}
	s.logger.Info(fmt.Sprintf("[%s] admin login: %s", GetRequestID(r.Context()), secret(staff.Email)))
	s.writeJSON(w, http.StatusOK, staff)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cookie, err := r.Cookie(s.conf.Session.Cookie); err == nil && s.sessions != nil {
		if err = s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.Error(fmt.Sprintf("[%s] delete session", GetRequestID(r.Context())), err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.conf.Session.Cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) uploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	file, header, err := r.FormFile("avatar")
	if err != nil {
		s.fail(w, r, "avatar", fmt.Errorf("%w: avatar file: %v", ErrInvalidInput, err))
		return
	}
	defer func() { _ = file.Close() }()

	session := sessionFrom(r.Context())
	url, err := s.accounts.UpdateAvatar(r.Context(), session, header.Filename, file)
	if err != nil {
		s.fail(w, r, "avatar", err)
		return
	}
	session.Avatar = url
	if err = s.sessions.Save(r.Context(), session); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] update session avatar", GetRequestID(r.Context())), err)
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"avatar": url})
}

func (s *Server) listRoomTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomTypes, err := s.catalog.RoomTypes(r.Context())
	if err != nil {
		s.fail(w, r, "room types", err)
		return
	}
	s.writeJSON(w, http.StatusOK, roomTypes)
}

func (s *Server) addRoomType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "add room type", err)
		return
	}
	price, err := parseAmount(values["price"])
	if err != nil {
		s.fail(w, r, "add room type", err)
		return
	}
	roomType := &entity.RoomType{
		Name:        values["name"],
		Price:       price,
		Description: values["description"],
	}
	if roomType.Id, err = s.catalog.AddRoomType(r.Context(), roomType); err != nil {
		s.fail(w, r, "add room type", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, roomType)
}

func (s *Server) addRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "add room", err)
		return
	}
	room := &entity.Room{
		Number:      values["room_number"],
		RoomTypeId:  values["room_type_id"],
		Description: values["description"],
	}

	var filename string
	var image io.Reader
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File["room_image"]; len(headers) > 0 && headers[0].Filename != "" {
			file, err := headers[0].Open()
			if err != nil {
				s.fail(w, r, "add room", fmt.Errorf("%w: room image: %v", ErrInvalidInput, err))
				return
			}
			defer func() { _ = file.Close() }()
			filename = headers[0].Filename
			image = file
		}
	}

	room.Id, err = s.catalog.AddRoom(r.Context(), room, filename, image)
	if err != nil {
		if room.Id == "" {
			s.fail(w, r, "add room", err)
			return
		}
		s.logger.Error(fmt.Sprintf("[%s] room %s image", GetRequestID(r.Context()), room.Id), err)
	}
	s.writeJSON(w, http.StatusCreated, room)
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := s.catalog.Rooms(r.Context())
	if err != nil {
		s.fail(w, r, "rooms", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) image(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var buf bytes.Buffer
	if err := s.catalog.Image(r.Context(), ps.ByName("id"), &buf); err != nil {
		s.fail(w, r, "image", err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(buf.Bytes()))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	quote, err := s.bookings.Quote(r.Context(), ps.ByName("room_id"), query.Get("checkin"), query.Get("checkout"))
	if err != nil {
		s.fail(w, r, "quote", err)
		return
	}
	s.writeJSON(w, http.StatusOK, quote)
}

// book stores a pending booking and sends the guest to the payment gateway.
func (s *Server) book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	values, err := s.formValues(w, r)
	if err != nil {
		s.fail(w, r, "booking", err)
		return
	}
	booking := &entity.Booking{
		RoomId:     ps.ByName("room_id"),
		FirstName:  values["first_name"],
		LastName:   values["last_name"],
		Email:      values["email"],
		Country:    values["country"],
		Address:    values["address"],
		City:       values["city"],
		PostalCode: values["postal_code"],
		RegionCode: values["region_code"],
		Phone:      values["phone"],
	}
	if session := s.session(r); session != nil && !session.IsAdmin {
		booking.CustomerId = session.UserId
	}

	booking, err = s.bookings.Book(r.Context(), booking, values["checkin"], values["checkout"])
	if err != nil {
		s.fail(w, r, "booking", err)
		return
	}

	paymentUrl, err := s.payments.PaymentUrl(r.Context(), booking.Total, booking.TxnRef, s.proxies.ClientIP(r), s.returnUrl(r))
	if err != nil {
		s.fail(w, r, "booking payment", err)
		return
	}
	http.Redirect(w, r, paymentUrl, http.StatusSeeOther)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	value := r.URL.Query().Get("amount")
	if value == "" {
		value = defaultPaymentAmount
	}
	amount, err := parseAmount(value)
	if err != nil {
		s.fail(w, r, "create payment", err)
		return
	}

	paymentUrl, err := s.payments.PaymentUrl(r.Context(), amount, "", s.proxies.ClientIP(r), s.returnUrl(r))
	if err != nil {
		s.fail(w, r, "create payment", err)
		return
	}
	http.Redirect(w, r, paymentUrl, http.StatusFound)
}

func (s *Server) paymentReturn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	params := make(map[string]string, len(query))
	for key := range query {
		params[key] = query.Get(key)
	}

	result, err := s.payments.ProcessReturn(r.Context(), params)
	if errors.Is(err, ErrMissingHash) || errors.Is(err, ErrSignatureMismatch) {
		s.writeJSON(w, http.StatusBadRequest, paymentResponse{
			Status:  "rejected",
			Message: "invalid signature",
		})
		return
	}
	if err != nil {
		s.fail(w, r, "payment return", err)
		return
	}

	message := "payment failed"
	if result.IsSuccess() {
		message = "payment successful"
	}
	s.writeJSON(w, http.StatusOK, paymentResponse{
		Status:        string(result.Outcome),
		Code:          result.ResponseCode,
		TxnRef:        result.TxnRef,
		Amount:        result.Amount,
		BankCode:      result.BankCode,
		TransactionNo: result.TransactionNo,
		Message:       message,
	})
}
