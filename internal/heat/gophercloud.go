package heat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/openstack/orchestration/v1/stackevents"
	"github.com/gophercloud/gophercloud/openstack/orchestration/v1/stacks"
)

// stackClient implements Client against the OpenStack orchestration API.
type stackClient struct {
	sc *gophercloud.ServiceClient
}

// Connect authenticates against keystone with the rc variables of a host and
// returns an orchestration client. Every HTTP round trip is bounded by timeout.
func Connect(env map[string]string, timeout time.Duration) (Client, error) {
	opts, err := authOptions(env)
	if err != nil {
		return nil, err
	}
	provider, err := openstack.NewClient(opts.IdentityEndpoint)
	if err != nil {
		return nil, fmt.Errorf("identity client: %w", err)
	}
	provider.HTTPClient = http.Client{Timeout: timeout}
	if err := openstack.Authenticate(provider, opts); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	sc, err := openstack.NewOrchestrationV1(provider, gophercloud.EndpointOpts{
		Region: env["OS_REGION_NAME"],
	})
	if err != nil {
		return nil, fmt.Errorf("orchestration client: %w", err)
	}
	return &stackClient{sc: sc}, nil
}

func authOptions(env map[string]string) (gophercloud.AuthOptions, error) {
	opts := gophercloud.AuthOptions{
		IdentityEndpoint:            env["OS_AUTH_URL"],
		Username:                    env["OS_USERNAME"],
		UserID:                      env["OS_USERID"],
		Password:                    env["OS_PASSWORD"],
		TenantID:                    firstOf(env, "OS_PROJECT_ID", "OS_TENANT_ID"),
		TenantName:                  firstOf(env, "OS_PROJECT_NAME", "OS_TENANT_NAME"),
		DomainID:                    firstOf(env, "OS_USER_DOMAIN_ID", "OS_DOMAIN_ID"),
		DomainName:                  firstOf(env, "OS_USER_DOMAIN_NAME", "OS_DOMAIN_NAME"),
		ApplicationCredentialID:     env["OS_APPLICATION_CREDENTIAL_ID"],
		ApplicationCredentialName:   env["OS_APPLICATION_CREDENTIAL_NAME"],
		ApplicationCredentialSecret: env["OS_APPLICATION_CREDENTIAL_SECRET"],
		AllowReauth:                 true,
	}
	if opts.IdentityEndpoint == "" {
		return opts, errors.New("OS_AUTH_URL is not set")
	}
	if opts.Password == "" && opts.ApplicationCredentialSecret == "" {
		return opts, errors.New("neither OS_PASSWORD nor OS_APPLICATION_CREDENTIAL_SECRET is set")
	}
	return opts, nil
}

func firstOf(env map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := env[k]; v != "" {
			return v
		}
	}
	return ""
}

func (c *stackClient) CreateStack(ctx context.Context, spec StackSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	created, err := stacks.Create(c.sc, stacks.CreateOpts{
		Name:         spec.Name,
		TemplateOpts: &stacks.Template{TE: stacks.TE{Bin: spec.Template}},
		Timeout:      spec.TimeoutMinutes,
	}).Extract()
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *stackClient) DeleteStack(ctx context.Context, name, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return normalize(stacks.Delete(c.sc, name, id).ExtractErr())
}

func (c *stackClient) GetStack(ctx context.Context, ref string) (*Stack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rs, err := stacks.Find(c.sc, ref).Extract()
	if err != nil {
		return nil, normalize(err)
	}
	action, status := splitStackStatus(rs.Status)
	st := &Stack{
		ID:     rs.ID,
		Name:   rs.Name,
		Action: action,
		Status: status,
		Reason: rs.StatusReason,
	}
	for _, o := range rs.Outputs {
		key, _ := o["output_key"].(string)
		st.Outputs = append(st.Outputs, Output{Key: key, Value: o["output_value"]})
	}
	return st, nil
}

func (c *stackClient) ListOutputs(ctx context.Context, ref string) ([]Output, error) {
	st, err := c.GetStack(ctx, ref)
	if err != nil {
		return nil, err
	}
	return st.Outputs, nil
}

func (c *stackClient) ListEvents(ctx context.Context, name, id string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages, err := stackevents.List(c.sc, name, id, nil).AllPages()
	if err != nil {
		return nil, normalize(err)
	}
	raw, err := stackevents.ExtractEvents(pages)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(raw))
	for _, e := range raw {
		events = append(events, Event{
			ResourceName:         e.ResourceName,
			LogicalResourceID:    e.LogicalResourceID,
			PhysicalResourceID:   e.PhysicalResourceID,
			ResourceStatus:       e.ResourceStatus,
			ResourceStatusReason: e.ResourceStatusReason,
			Time:                 e.Time,
		})
	}
	return events, nil
}

// normalize maps the backend's 404 onto ErrStackNotFound.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	var notFound gophercloud.ErrDefault404
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrStackNotFound, err)
	}
	return err
}
