package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devghori1264/aerophoenix/osplugin/internal/admission"
	"github.com/devghori1264/aerophoenix/osplugin/internal/configstore"
	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
	"github.com/devghori1264/aerophoenix/osplugin/internal/heat/heattest"
	"github.com/devghori1264/aerophoenix/osplugin/internal/models"
	"github.com/devghori1264/aerophoenix/osplugin/internal/storage"
	"github.com/devghori1264/aerophoenix/osplugin/internal/translator"
	"github.com/devghori1264/aerophoenix/osplugin/internal/validate"
)

const host = "192.168.1.10"

type creds struct{ token, host string }

func (c creds) GetAccessToken() string { return c.token }
func (c creds) GetHostIp() string      { return c.host }

type scheduled struct {
	id  string
	gen uint64
}

type fakeScheduler struct {
	mu    sync.Mutex
	calls []scheduled
}

func (s *fakeScheduler) Schedule(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, scheduled{id, gen})
}

func (s *fakeScheduler) all() []scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduled(nil), s.calls...)
}

type env struct {
	ctl       *Controller
	store     storage.Store
	backend   *heattest.Backend
	factory   *heattest.Factory
	scheduler *fakeScheduler
	cfgFs     afero.Fs
	ok        creds
}

func token(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validate.Claims{
		UserID: "tenant-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := storage.NewInMemoryBadgerStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	pkgFs := afero.NewOsFs()
	gate, err := admission.NewGate(pkgFs, filepath.Join(t.TempDir(), "packages"), translator.New(pkgFs), 0, zap.NewNop())
	require.NoError(t, err)

	cfgFs := afero.NewMemMapFs()
	configs, err := configstore.New(cfgFs, "/config", 1024)
	require.NoError(t, err)

	v, err := validate.NewValidator(nil)
	require.NoError(t, err)

	e := &env{
		store:     store,
		backend:   heattest.NewBackend(),
		scheduler: &fakeScheduler{},
		cfgFs:     cfgFs,
		ok:        creds{token: token(t), host: host},
	}
	e.factory = heattest.NewFactory(e.backend)
	e.ctl = New(v, store, e.factory, gate, configs, e.scheduler, Options{Logger: zap.NewNop()})
	return e
}

func packageZip(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("Definitions/app.yaml")
	require.NoError(t, err)
	_, err = w.Write([]byte("heat_template_version: 2016-10-14\nresources: {}\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func (e *env) upload(t *testing.T, packageID string) {
	t.Helper()
	archive := packageZip(t)
	require.NoError(t, e.ctl.UploadPackage(context.Background(), e.ok, packageID, archive, archive.Size()))
}

func TestInstantiate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.upload(t, "pkg-1")

	require.NoError(t, e.ctl.Instantiate(ctx, e.ok, "inst-1", "pkg-1"))

	m, err := e.store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInstantiating, m.OperationalStatus)
	assert.Equal(t, host, m.HostID)
	assert.Equal(t, "stack-1", m.RemoteHandle)
	assert.Regexp(t, regexp.MustCompile(`^eg-[0-9a-f]{8}$`), m.StackName)
	assert.Equal(t, uint64(1), m.Generation)
	assert.Equal(t, []scheduled{{"inst-1", 1}}, e.scheduler.all())
	assert.Equal(t, 1, e.backend.Calls("create"))
}

func TestInstantiateRejectsDuplicate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.upload(t, "pkg-1")
	require.NoError(t, e.ctl.Instantiate(ctx, e.ok, "inst-1", "pkg-1"))
	before, err := e.store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)

	err = e.ctl.Instantiate(ctx, e.ok, "inst-1", "pkg-1")
	assert.Equal(t, Conflict, KindOf(err))

	after, err := e.store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, e.backend.Calls("create"))
	assert.Len(t, e.scheduler.all(), 1)
}

func TestInstantiateConcurrentSameID(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "pkg-1")

	const callers = 10
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.ctl.Instantiate(context.Background(), e.ok, "inst-1", "pkg-1")
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, Conflict, KindOf(err), err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, e.backend.Calls("create"))
	assert.Equal(t, 1, e.backend.Stacks())
	assert.Len(t, e.scheduler.all(), 1)
}

func TestInstantiateFailures(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		e := newEnv(t)
		e.upload(t, "pkg-1")
		err := e.ctl.Instantiate(context.Background(), creds{token: "nope", host: host}, "inst-1", "pkg-1")
		assert.Equal(t, InvalidInput, KindOf(err))
		assert.Equal(t, 400, Code(err))
		assert.Zero(t, e.backend.Calls("create"))
	})
	t.Run("invalid host", func(t *testing.T) {
		e := newEnv(t)
		err := e.ctl.Instantiate(context.Background(), creds{token: e.ok.token, host: "300.1.1.1"}, "inst-1", "pkg-1")
		assert.Equal(t, InvalidInput, KindOf(err))
	})
	t.Run("missing instance id", func(t *testing.T) {
		e := newEnv(t)
		err := e.ctl.Instantiate(context.Background(), e.ok, "", "pkg-1")
		assert.Equal(t, InvalidInput, KindOf(err))
	})
	t.Run("package not admitted", func(t *testing.T) {
		e := newEnv(t)
		err := e.ctl.Instantiate(context.Background(), e.ok, "inst-1", "pkg-1")
		assert.Equal(t, NotFoundLocal, KindOf(err))
		_, err = e.store.GetInstance(context.Background(), "inst-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("backend create fails", func(t *testing.T) {
		e := newEnv(t)
		e.upload(t, "pkg-1")
		e.backend.CreateErr = errors.New("quota exceeded")
		err := e.ctl.Instantiate(context.Background(), e.ok, "inst-1", "pkg-1")
		assert.Equal(t, BackendError, KindOf(err))
		_, err = e.store.GetInstance(context.Background(), "inst-1")
		assert.ErrorIs(t, err, storage.ErrNotFound, "reservation is dropped")
		assert.Empty(t, e.scheduler.all())
	})
	t.Run("backend create times out", func(t *testing.T) {
		e := newEnv(t)
		e.upload(t, "pkg-1")
		e.backend.CreateErr = fmt.Errorf("create stack: %w", context.DeadlineExceeded)
		err := e.ctl.Instantiate(context.Background(), e.ok, "inst-1", "pkg-1")
		assert.Equal(t, BackendError, KindOf(err))

		m, err := e.store.GetInstance(context.Background(), "inst-1")
		require.NoError(t, err, "reservation is kept")
		assert.Equal(t, models.StatusFailure, m.OperationalStatus)
		assert.Contains(t, m.OperationInfo, "deadline exceeded")
		assert.Empty(t, m.RemoteHandle)
		assert.Empty(t, e.scheduler.all())

		// the create landed after all; terminate finds the stack by name
		e.backend.AddStack(heat.Stack{ID: "s7", Name: m.StackName, Action: heat.ActionCreate, Status: heat.StatusComplete})
		require.NoError(t, e.ctl.Terminate(context.Background(), e.ok, "inst-1"))
		m, err = e.store.GetInstance(context.Background(), "inst-1")
		require.NoError(t, err)
		assert.Equal(t, "s7", m.RemoteHandle)
		assert.Equal(t, models.StatusTerminating, m.OperationalStatus)
		assert.Equal(t, 1, e.backend.Calls("delete"))
	})
	t.Run("no credentials", func(t *testing.T) {
		e := newEnv(t)
		e.upload(t, "pkg-1")
		e.factory.Err = heat.ErrNoCredentials
		err := e.ctl.Instantiate(context.Background(), e.ok, "inst-1", "pkg-1")
		assert.Equal(t, BackendError, KindOf(err))
		_, err = e.store.GetInstance(context.Background(), "inst-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func (e *env) seed(t *testing.T, m *models.Instance) {
	t.Helper()
	require.NoError(t, e.store.CreateInstance(context.Background(), m))
}

func TestTerminate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.backend.AddStack(heat.Stack{ID: "s1", Name: "eg-1", Action: heat.ActionCreate, Status: heat.StatusComplete})
	e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1})

	require.NoError(t, e.ctl.Terminate(ctx, e.ok, "inst-1"))

	m, err := e.store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTerminating, m.OperationalStatus)
	assert.Equal(t, uint64(2), m.Generation)
	assert.Equal(t, []scheduled{{"inst-1", 2}}, e.scheduler.all())
	assert.Equal(t, 1, e.backend.Calls("delete"))

	// a second terminate is accepted again and restarts tracking
	require.NoError(t, e.ctl.Terminate(ctx, e.ok, "inst-1"))
	assert.Equal(t, []scheduled{{"inst-1", 2}, {"inst-1", 3}}, e.scheduler.all())
}

func TestTerminateIdempotentWithoutRecord(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 2; i++ {
		require.NoError(t, e.ctl.Terminate(context.Background(), e.ok, "ghost"))
	}
	assert.Zero(t, e.backend.Calls("delete"))
	assert.Empty(t, e.scheduler.all())
}

func TestTerminateStackAlreadyGone(t *testing.T) {
	e := newEnv(t)
	e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1})

	require.NoError(t, e.ctl.Terminate(context.Background(), e.ok, "inst-1"))
	m, err := e.store.GetInstance(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTerminating, m.OperationalStatus)
	assert.Equal(t, []scheduled{{"inst-1", 2}}, e.scheduler.all())
}

func TestTerminateBackendErrorLeavesRecord(t *testing.T) {
	e := newEnv(t)
	e.backend.DeleteErr = errors.New("connection refused")
	orig := &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1}
	e.seed(t, orig)

	err := e.ctl.Terminate(context.Background(), e.ok, "inst-1")
	assert.Equal(t, BackendError, KindOf(err))

	m, err := e.store.GetInstance(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInstantiated, m.OperationalStatus)
	assert.Equal(t, uint64(1), m.Generation)
	assert.Empty(t, e.scheduler.all())
}

func TestTerminateWithoutHandle(t *testing.T) {
	t.Run("create in flight", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1",
			OperationalStatus: models.StatusInstantiating, Generation: 1})
		err := e.ctl.Terminate(context.Background(), e.ok, "inst-1")
		assert.Equal(t, Conflict, KindOf(err))
		assert.Zero(t, e.backend.Calls("delete"))
	})
	t.Run("failed and never created", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1",
			OperationalStatus: models.StatusFailure, OperationInfo: "stack not found", Generation: 1})
		require.NoError(t, e.ctl.Terminate(context.Background(), e.ok, "inst-1"))
		_, err := e.store.GetInstance(context.Background(), "inst-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("failed but found by name", func(t *testing.T) {
		e := newEnv(t)
		e.backend.AddStack(heat.Stack{ID: "s9", Name: "eg-1", Action: heat.ActionCreate, Status: heat.StatusFailed})
		e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1",
			OperationalStatus: models.StatusFailure, Generation: 1})
		require.NoError(t, e.ctl.Terminate(context.Background(), e.ok, "inst-1"))
		m, err := e.store.GetInstance(context.Background(), "inst-1")
		require.NoError(t, err)
		assert.Equal(t, "s9", m.RemoteHandle)
		assert.Equal(t, models.StatusTerminating, m.OperationalStatus)
	})
}

func TestQuery(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.backend.AddStack(heat.Stack{ID: "s1", Name: "eg-1", Action: heat.ActionCreate, Status: heat.StatusComplete})
	e.backend.SetOutputs("s1",
		heat.Output{Key: "VDU1_info", Value: map[string]any{
			"vmId":   "vm-1",
			"vncUrl": "http://vnc/1",
			"networks": map[string]any{
				"mec_network_n6": []any{map[string]any{"addr": "10.1.0.5"}, map[string]any{"addr": "10.1.0.6"}},
				"3f2a4c6e-1b2d-4e5f-8a9b-0c1d2e3f4a5b": []any{map[string]any{"addr": "10.9.9.9"}},
				"mec_network_mep": []any{"10.2.0.7"},
			},
		}},
		heat.Output{Key: "note", Value: "not a vm"},
	)
	e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1})

	vms, err := e.ctl.Query(ctx, e.ok, "inst-1")
	require.NoError(t, err)
	want := []VM{{
		VMID:   "vm-1",
		VNCURL: "http://vnc/1",
		Networks: []Network{
			{Name: "mec_network_mep", IP: "10.2.0.7"},
			{Name: "mec_network_n6", IP: "10.1.0.5"},
		},
	}}
	if diff := cmp.Diff(want, vms); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	assert.JSONEq(t,
		`{"code":200,"msg":"ok","data":[{"vmId":"vm-1","vncUrl":"http://vnc/1","networks":[{"name":"mec_network_mep","ip":"10.2.0.7"},{"name":"mec_network_n6","ip":"10.1.0.5"}]}]}`,
		QueryJSON(vms, err))
}

func TestQueryCodes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.ctl.Query(ctx, creds{token: "bad", host: host}, "inst-1")
	assert.JSONEq(t, `{"code":400,"msg":"invalid request"}`, QueryJSON(nil, err))

	_, err = e.ctl.Query(ctx, e.ok, "missing")
	assert.JSONEq(t, `{"code":404,"msg":"instance not found"}`, QueryJSON(nil, err))

	e.seed(t, &models.Instance{InstanceID: "pending", HostID: host, StackName: "eg-2",
		OperationalStatus: models.StatusInstantiating, Generation: 1})
	vms, err := e.ctl.Query(ctx, e.ok, "pending")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"msg":"ok","data":[]}`, QueryJSON(vms, err))

	e.backend.AddStack(heat.Stack{ID: "s1", Name: "eg-1"})
	e.backend.OutputsErr = errors.New("gateway timeout")
	e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1})
	_, err = e.ctl.Query(ctx, e.ok, "inst-1")
	assert.Equal(t, BackendError, KindOf(err))
	assert.JSONEq(t, `{"code":500,"msg":"server error"}`, QueryJSON(nil, err))
}

func TestWorkloadEvents(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e.backend.AddStack(heat.Stack{ID: "s1", Name: "eg-1"})
	e.backend.SetEvents("s1",
		heat.Event{ResourceName: "VDU1", LogicalResourceID: "VDU1", PhysicalResourceID: "p-1", ResourceStatus: "CREATE_IN_PROGRESS", ResourceStatusReason: "state changed", Time: t0},
		heat.Event{ResourceName: "net", LogicalResourceID: "net", PhysicalResourceID: "p-2", ResourceStatus: "CREATE_COMPLETE", ResourceStatusReason: "state changed", Time: t0.Add(time.Second)},
		heat.Event{ResourceName: "VDU1", LogicalResourceID: "VDU1", PhysicalResourceID: "p-1", ResourceStatus: "CREATE_COMPLETE", ResourceStatusReason: "state changed", Time: t0.Add(2 * time.Second)},
	)
	e.seed(t, &models.Instance{InstanceID: "inst-1", HostID: host, StackName: "eg-1", RemoteHandle: "s1",
		OperationalStatus: models.StatusInstantiated, Generation: 1})

	groups, err := e.ctl.WorkloadEvents(ctx, e.ok, "inst-1")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"resourceName":"VDU1","logicalResourceId":"VDU1","physicalResourceId":"p-1","events":[
			{"eventTime":"2024-03-01T10:00:00Z","resourceStatus":"CREATE_IN_PROGRESS","resourceStatusReason":"state changed"},
			{"eventTime":"2024-03-01T10:00:02Z","resourceStatus":"CREATE_COMPLETE","resourceStatusReason":"state changed"}]},
		{"resourceName":"net","logicalResourceId":"net","physicalResourceId":"p-2","events":[
			{"eventTime":"2024-03-01T10:00:01Z","resourceStatus":"CREATE_COMPLETE","resourceStatusReason":"state changed"}]}
	]`, EventsJSON(groups, err))

	_, err = e.ctl.WorkloadEvents(ctx, creds{token: e.ok.token, host: "x"}, "inst-1")
	assert.JSONEq(t, `{"code":400}`, EventsJSON(nil, err))
	_, err = e.ctl.WorkloadEvents(ctx, e.ok, "missing")
	assert.JSONEq(t, `{"code":404}`, EventsJSON(nil, err))
	e.backend.EventsErr = errors.New("boom")
	_, err = e.ctl.WorkloadEvents(ctx, e.ok, "inst-1")
	assert.JSONEq(t, `{"code":500}`, EventsJSON(nil, err))
}

func TestUploadAndRemoveConfig(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	path := filepath.Join("/config", host)

	err := e.ctl.UploadConfig(ctx, e.ok, nil)
	assert.Equal(t, InvalidInput, KindOf(err))
	exists, _ := afero.Exists(e.cfgFs, path)
	assert.False(t, exists)
	assert.Empty(t, e.factory.Invalidated())

	err = e.ctl.UploadConfig(ctx, e.ok, bytes.Repeat([]byte("x"), 2048))
	assert.Equal(t, InvalidInput, KindOf(err))

	rc := []byte("export OS_AUTH_URL=http://keystone:5000/v3\n")
	require.NoError(t, e.ctl.UploadConfig(ctx, e.ok, rc))
	got, err := afero.ReadFile(e.cfgFs, path)
	require.NoError(t, err)
	assert.Equal(t, rc, got)

	require.NoError(t, e.ctl.RemoveConfig(ctx, e.ok))
	require.NoError(t, e.ctl.RemoveConfig(ctx, e.ok), "removing a missing config succeeds")
	exists, _ = afero.Exists(e.cfgFs, path)
	assert.False(t, exists)
	assert.Equal(t, []string{host, host, host}, e.factory.Invalidated())

	err = e.ctl.RemoveConfig(ctx, creds{token: e.ok.token, host: ""})
	assert.Equal(t, InvalidInput, KindOf(err))
}

func TestPackageLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.upload(t, "pkg-1")

	archive := packageZip(t)
	err := e.ctl.UploadPackage(ctx, e.ok, "pkg-1", archive, archive.Size())
	assert.Equal(t, Conflict, KindOf(err))

	err = e.ctl.UploadPackage(ctx, e.ok, "../evil", archive, archive.Size())
	assert.Equal(t, InvalidInput, KindOf(err))

	require.NoError(t, e.ctl.DeletePackage(ctx, e.ok, "pkg-1"))
	require.NoError(t, e.ctl.DeletePackage(ctx, e.ok, "pkg-1"))
	err = e.ctl.Instantiate(ctx, e.ok, "inst-1", "pkg-1")
	assert.Equal(t, NotFoundLocal, KindOf(err))
}
