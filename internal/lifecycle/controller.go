// Package lifecycle implements the application instance operations: it
// validates requests, reserves records, drives the backend and hands
// convergence over to the reconciler.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
	"github.com/devghori1264/aerophoenix/osplugin/internal/models"
	"github.com/devghori1264/aerophoenix/osplugin/internal/storage"
	"github.com/devghori1264/aerophoenix/osplugin/internal/validate"
)

const maxInstanceIDLen = 256

var (
	errInstanceID     = errors.New("appInstanceId is required")
	errCreateInFlight = errors.New("stack create not confirmed yet, retry later")
)

// Validator checks the common request fields and returns the host.
type Validator interface {
	Request(c validate.Credentials) (string, error)
}

// Packages is the admission gate as seen by the controller.
type Packages interface {
	Admit(ctx context.Context, hostID, packageID string, archive io.ReaderAt, size int64) error
	Remove(hostID, packageID string) error
	ReadTemplate(hostID, packageID string) ([]byte, error)
}

// Configs stores the per-host backend credentials.
type Configs interface {
	Put(hostID string, data []byte) error
	Remove(hostID string) error
}

// Scheduler starts reconciliation of an instance at a record generation.
type Scheduler interface {
	Schedule(instanceID string, gen uint64)
}

// Options tunes a Controller. Zero values select defaults.
type Options struct {
	// StackTimeoutMinutes is passed to the backend on create.
	StackTimeoutMinutes int
	Logger              *zap.Logger
	Tracer              trace.Tracer
	// StackName generates remote stack names.
	StackName func() string
}

type Controller struct {
	validator Validator
	store     storage.Store
	backends  heat.ClientFactory
	packages  Packages
	configs   Configs
	scheduler Scheduler

	stackTimeout int
	stackName    func() string
	log          *zap.Logger
	tracer       trace.Tracer
}

func New(v Validator, store storage.Store, backends heat.ClientFactory, packages Packages, configs Configs, scheduler Scheduler, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("github.com/devghori1264/aerophoenix/osplugin/internal/lifecycle")
	}
	if opts.StackName == nil {
		opts.StackName = NewStackName
	}
	return &Controller{
		validator:    v,
		store:        store,
		backends:     backends,
		packages:     packages,
		configs:      configs,
		scheduler:    scheduler,
		stackTimeout: opts.StackTimeoutMinutes,
		stackName:    opts.StackName,
		log:          opts.Logger.Named("lifecycle"),
		tracer:       opts.Tracer,
	}
}

// NewStackName returns a random backend stack name: "eg-" and eight hex digits.
func NewStackName() string {
	return "eg-" + uuid.NewString()[:8]
}

func (c *Controller) span(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "lifecycle."+op, trace.WithAttributes(attrs...))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(KindOf(err)))
	}
	span.End()
}

// request runs the validation gate shared by every operation.
func (c *Controller) request(op string, cred validate.Credentials) (string, error) {
	host, err := c.validator.Request(cred)
	if err != nil {
		c.log.Debug("request rejected", zap.String("op", op), zap.Error(err))
		return "", fail(op, InvalidInput, validate.ErrInvalidInput)
	}
	return host, nil
}

func checkInstanceID(op, id string) error {
	if id == "" || len(id) > maxInstanceIDLen {
		return fail(op, InvalidInput, errInstanceID)
	}
	return nil
}

// Instantiate deploys an admitted package as a new stack and starts
// tracking it under instanceID.
func (c *Controller) Instantiate(ctx context.Context, cred validate.Credentials, instanceID, packageID string) (err error) {
	const op = "instantiate"
	ctx, span := c.span(ctx, op, attribute.String("instance.id", instanceID), attribute.String("package.id", packageID))
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := checkInstanceID(op, instanceID); err != nil {
		return err
	}
	log := c.log.With(zap.String("instance", instanceID), zap.String("host", host))

	tpl, err := c.packages.ReadTemplate(host, packageID)
	if err != nil {
		return classify(op, err, StorageError)
	}

	name := c.stackName()
	rec := &models.Instance{
		InstanceID:        instanceID,
		HostID:            host,
		StackName:         name,
		OperationalStatus: models.StatusInstantiating,
		Generation:        1,
	}
	if err := c.store.CreateInstance(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Info("instance already exists")
		}
		return classify(op, err, StorageError)
	}

	client, err := c.backends.ForHost(ctx, host)
	if err != nil {
		c.dropReservation(ctx, rec)
		return classify(op, err, BackendError)
	}
	stackID, err := client.CreateStack(ctx, heat.StackSpec{
		Name:           name,
		Template:       tpl,
		TimeoutMinutes: c.stackTimeout,
	})
	if err != nil {
		log.Warn("create stack", zap.String("stack", name), zap.Error(err))
		if unconfirmed(err) {
			// the stack may exist; terminate resolves it by name
			c.keepReservation(ctx, rec, err)
		} else {
			c.dropReservation(ctx, rec)
		}
		return fail(op, BackendError, err)
	}

	_, err = c.store.UpdateInstance(ctx, instanceID, func(m *models.Instance) error {
		if m.StackName != name {
			return fmt.Errorf("record for %s was replaced", instanceID)
		}
		m.RemoteHandle = stackID
		return nil
	})
	if err != nil {
		// the reservation carries the stack name; the reconciler finds the stack by it
		log.Warn("commit stack handle", zap.String("stack", stackID), zap.Error(err))
	}
	c.scheduler.Schedule(instanceID, rec.Generation)
	log.Info("instantiate accepted", zap.String("stack", name), zap.String("stack_id", stackID))
	return nil
}

// dropReservation removes a reservation whose create never reached the backend.
func (c *Controller) dropReservation(ctx context.Context, rec *models.Instance) {
	err := c.store.DeleteInstance(context.WithoutCancel(ctx), rec.InstanceID, func(m *models.Instance) error {
		if m.StackName != rec.StackName {
			return fmt.Errorf("record for %s was replaced", rec.InstanceID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.log.Error("drop reservation", zap.String("instance", rec.InstanceID), zap.Error(err))
	}
}

// keepReservation marks a reservation FAILURE when the create request may
// have reached the backend without an answer.
func (c *Controller) keepReservation(ctx context.Context, rec *models.Instance, cause error) {
	_, err := c.store.UpdateInstance(context.WithoutCancel(ctx), rec.InstanceID, func(m *models.Instance) error {
		if m.StackName != rec.StackName {
			return fmt.Errorf("record for %s was replaced", rec.InstanceID)
		}
		m.OperationalStatus = models.StatusFailure
		m.OperationInfo = cause.Error()
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.log.Error("keep reservation", zap.String("instance", rec.InstanceID), zap.Error(err))
	}
}

// unconfirmed reports whether err leaves the outcome of a backend call unknown.
func unconfirmed(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Terminate deletes the instance's stack. Unknown instances succeed.
func (c *Controller) Terminate(ctx context.Context, cred validate.Credentials, instanceID string) (err error) {
	const op = "terminate"
	ctx, span := c.span(ctx, op, attribute.String("instance.id", instanceID))
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := checkInstanceID(op, instanceID); err != nil {
		return err
	}
	log := c.log.With(zap.String("instance", instanceID), zap.String("host", host))

	m, err := c.store.GetInstance(ctx, instanceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fail(op, StorageError, err)
	}

	client, err := c.backends.ForHost(ctx, m.HostID)
	if err != nil {
		return classify(op, err, BackendError)
	}

	stackID := m.RemoteHandle
	if stackID == "" {
		if m.OperationalStatus == models.StatusInstantiating {
			return fail(op, Conflict, errCreateInFlight)
		}
		st, err := client.GetStack(ctx, m.StackName)
		switch {
		case errors.Is(err, heat.ErrStackNotFound):
			// nothing was ever created remotely
			if err := c.store.DeleteInstance(ctx, instanceID, nil); err != nil {
				return fail(op, StorageError, err)
			}
			log.Info("terminated instance without stack")
			return nil
		case err != nil:
			return fail(op, BackendError, err)
		}
		stackID = st.ID
	}

	if err := client.DeleteStack(ctx, m.StackName, stackID); err != nil {
		if !errors.Is(err, heat.ErrStackNotFound) {
			log.Warn("delete stack", zap.String("stack", stackID), zap.Error(err))
			return fail(op, BackendError, err)
		}
		log.Debug("stack already gone", zap.String("stack", stackID))
	}

	updated, err := c.store.UpdateInstance(ctx, instanceID, func(m *models.Instance) error {
		m.OperationalStatus = models.StatusTerminating
		m.Generation++
		if m.RemoteHandle == "" {
			m.RemoteHandle = stackID
		}
		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fail(op, StorageError, err)
	}
	c.scheduler.Schedule(instanceID, updated.Generation)
	log.Info("terminate accepted", zap.Uint64("generation", updated.Generation))
	return nil
}

// Query returns the VMs of an instance as reported by its stack outputs.
func (c *Controller) Query(ctx context.Context, cred validate.Credentials, instanceID string) (vms []VM, err error) {
	const op = "query"
	ctx, span := c.span(ctx, op, attribute.String("instance.id", instanceID))
	defer func() { end(span, err) }()

	m, client, err := c.lookup(ctx, op, cred, instanceID)
	if err != nil || m.RemoteHandle == "" {
		return []VM{}, err
	}
	outputs, err := client.ListOutputs(ctx, m.RemoteHandle)
	if err != nil {
		return nil, fail(op, BackendError, err)
	}
	return vmsFromOutputs(outputs), nil
}

// WorkloadEvents returns the instance's stack events grouped by resource.
func (c *Controller) WorkloadEvents(ctx context.Context, cred validate.Credentials, instanceID string) (groups []ResourceEvents, err error) {
	const op = "workloadEvents"
	ctx, span := c.span(ctx, op, attribute.String("instance.id", instanceID))
	defer func() { end(span, err) }()

	m, client, err := c.lookup(ctx, op, cred, instanceID)
	if err != nil || m.RemoteHandle == "" {
		return []ResourceEvents{}, err
	}
	events, err := client.ListEvents(ctx, m.StackName, m.RemoteHandle)
	if err != nil {
		return nil, fail(op, BackendError, err)
	}
	return groupEvents(events), nil
}

// lookup validates a read request and loads the record. The client is nil
// when the record has no remote handle yet.
func (c *Controller) lookup(ctx context.Context, op string, cred validate.Credentials, instanceID string) (*models.Instance, heat.Client, error) {
	if _, err := c.request(op, cred); err != nil {
		return nil, nil, err
	}
	if err := checkInstanceID(op, instanceID); err != nil {
		return nil, nil, err
	}
	m, err := c.store.GetInstance(ctx, instanceID)
	if err != nil {
		return nil, nil, classify(op, err, StorageError)
	}
	if m.RemoteHandle == "" {
		return m, nil, nil
	}
	client, err := c.backends.ForHost(ctx, m.HostID)
	if err != nil {
		return nil, nil, classify(op, err, BackendError)
	}
	return m, client, nil
}

// UploadConfig stores the backend credentials of the request's host.
func (c *Controller) UploadConfig(ctx context.Context, cred validate.Credentials, data []byte) (err error) {
	const op = "uploadConfig"
	_, span := c.span(ctx, op, attribute.Int("config.bytes", len(data)))
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := c.configs.Put(host, data); err != nil {
		return classify(op, err, StorageError)
	}
	c.backends.Invalidate(host)
	c.log.Info("config uploaded", zap.String("host", host))
	return nil
}

// RemoveConfig deletes the credentials of the request's host. Removing a
// missing config succeeds.
func (c *Controller) RemoveConfig(ctx context.Context, cred validate.Credentials) (err error) {
	const op = "removeConfig"
	_, span := c.span(ctx, op)
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := c.configs.Remove(host); err != nil {
		return fail(op, StorageError, err)
	}
	c.backends.Invalidate(host)
	c.log.Info("config removed", zap.String("host", host))
	return nil
}

// UploadPackage admits a package archive for the request's host.
func (c *Controller) UploadPackage(ctx context.Context, cred validate.Credentials, packageID string, archive io.ReaderAt, size int64) (err error) {
	const op = "uploadPackage"
	ctx, span := c.span(ctx, op, attribute.String("package.id", packageID), attribute.Int64("package.bytes", size))
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := c.packages.Admit(ctx, host, packageID, archive, size); err != nil {
		return classify(op, err, StorageError)
	}
	return nil
}

// DeletePackage removes a package of the request's host. Deleting a missing
// package succeeds.
func (c *Controller) DeletePackage(ctx context.Context, cred validate.Credentials, packageID string) (err error) {
	const op = "deletePackage"
	_, span := c.span(ctx, op, attribute.String("package.id", packageID))
	defer func() { end(span, err) }()

	host, err := c.request(op, cred)
	if err != nil {
		return err
	}
	if err := c.packages.Remove(host, packageID); err != nil {
		return classify(op, err, StorageError)
	}
	c.log.Info("package deleted", zap.String("host", host), zap.String("package", packageID))
	return nil
}
