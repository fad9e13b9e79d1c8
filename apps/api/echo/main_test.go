package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/message"
	"github.com/buildbytes/lms/core/progress"
	"github.com/buildbytes/lms/core/resource"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
	inmemdb "github.com/buildbytes/lms/storage/database/inmem"
)

var (
	conf *core.Config
	db   *inmemdb.DB
	app  Server

	testAuth *auth

	usrSvc    *user.Service
	courseSvc *course.Service
	subSvc    *submission.Service
	resSvc    *resource.Service
	msgSvc    *message.Service
	certSvc   *certificate.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errPermDenied   = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:           true,
		Env:                "TEST",
		AppName:            "BuildBytes LMS",
		SecretKey:          "5up3r]53cr3t!",
		JWTExpirationDelta: 1 * time.Hour,
	}

	// set up DB & repos
	db = inmemdb.NewDB()
	mailSvc := emailsvc.NewConsoleService(conf)

	// set up services
	usrSvc = user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf)
	courseSvc = course.NewService(inmemdb.NewCourseRepository(db))
	subSvc = submission.NewService(inmemdb.NewSubmissionRepository(db), courseSvc)
	resSvc = resource.NewService(inmemdb.NewResourceRepository(db))
	msgSvc = message.NewService(inmemdb.NewMessageRepository(db), usrSvc)
	progressSvc := progress.NewService(courseSvc, subSvc, usrSvc)
	certSvc = certificate.NewService(inmemdb.NewCertificateRepository(db), courseSvc, usrSvc, mailSvc, conf)

	testAuth = newAuth(conf, usrSvc)

	// set up server
	app = NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         nopLogger{},
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		SubmissionSvc:  subSvc,
		ResourceSvc:    resSvc,
		MessageSvc:     msgSvc,
		ProgressSvc:    progressSvc,
		CertificateSvc: certSvc,
	})

	os.Exit(m.Run())
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
	emailsvc.ClearSentMessages()
}

func createUser(t *testing.T, name, email, pwd string, role user.Role) user.User {
	t.Helper()
	usr, err := usrSvc.Register(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := testAuth.generateToken(testAuth.claims(usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if tt.wantCode == 0 {
		tt.wantCode = http.StatusOK
	}
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
