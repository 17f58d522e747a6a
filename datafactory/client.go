package datafactory

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/datafactory/armdatafactory/v9"

	"github.com/c2fo/aztemp/utils"
)

// Debug session defaults, matching the values the Data Factory portal uses.
const (
	defaultComputeType = "General"
	defaultCoreCount   = int32(8)
	defaultTimeToLive  = int32(60)
)

// The Client interface contains the Data Factory debug-session operations the
// fixtures need. This interface is here so we can write mocks over the actual
// functionality.
type Client interface {
	CreateDebugSession(ctx context.Context) (string, error)
	AddDataFlow(ctx context.Context, sessionID, dataFlowName string) error
	ExecutePreview(ctx context.Context, sessionID, streamName string, rowLimits int32) (string, error)
	DeleteDebugSession(ctx context.Context, sessionID string) error
}

// ClientImpl is the main implementation that actually makes the calls to the Data
// Factory management plane.
type ClientImpl struct {
	sessions      *armdatafactory.DataFlowDebugSessionClient
	dataFlows     *armdatafactory.DataFlowsClient
	resourceGroup string
	factoryName   string
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil.
func NewClient(opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	cred, err := newCredential(opts)
	if err != nil {
		return nil, err
	}
	factory, err := armdatafactory.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}
	return &ClientImpl{
		sessions:      factory.NewDataFlowDebugSessionClient(),
		dataFlows:     factory.NewDataFlowsClient(),
		resourceGroup: opts.ResourceGroup,
		factoryName:   opts.FactoryName,
	}, nil
}

// CreateDebugSession starts a data-flow debug session and returns its id once the
// cluster is ready.
func (c *ClientImpl) CreateDebugSession(ctx context.Context) (string, error) {
	poller, err := c.sessions.BeginCreate(ctx, c.resourceGroup, c.factoryName,
		armdatafactory.CreateDataFlowDebugSessionRequest{
			ComputeType: utils.Ptr(defaultComputeType),
			CoreCount:   utils.Ptr(defaultCoreCount),
			TimeToLive:  utils.Ptr(defaultTimeToLive),
		}, nil)
	if err != nil {
		return "", err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", err
	}
	if resp.SessionID == nil {
		return "", fmt.Errorf("debug session created without a session id")
	}
	return *resp.SessionID, nil
}

// AddDataFlow stages the named data flow into the debug session.
func (c *ClientImpl) AddDataFlow(ctx context.Context, sessionID, dataFlowName string) error {
	flow, err := c.dataFlows.Get(ctx, c.resourceGroup, c.factoryName, dataFlowName, nil)
	if err != nil {
		return err
	}
	_, err = c.sessions.AddDataFlow(ctx, c.resourceGroup, c.factoryName,
		armdatafactory.DataFlowDebugPackage{
			SessionID: utils.Ptr(sessionID),
			DataFlow: &armdatafactory.DataFlowDebugResource{
				Name:       utils.Ptr(dataFlowName),
				Properties: flow.Properties,
			},
		}, nil)
	return err
}

// ExecutePreview runs a preview query against the named stream and returns the raw
// response data for ParsePreview.
func (c *ClientImpl) ExecutePreview(ctx context.Context, sessionID, streamName string, rowLimits int32) (string, error) {
	poller, err := c.sessions.BeginExecuteCommand(ctx, c.resourceGroup, c.factoryName,
		armdatafactory.DataFlowDebugCommandRequest{
			SessionID: utils.Ptr(sessionID),
			Command:   utils.Ptr(armdatafactory.DataFlowDebugCommandTypeExecutePreviewQuery),
			CommandPayload: &armdatafactory.DataFlowDebugCommandPayload{
				StreamName: utils.Ptr(streamName),
				RowLimits:  utils.Ptr(rowLimits),
			},
		}, nil)
	if err != nil {
		return "", err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", err
	}
	if resp.Status != nil && *resp.Status != "Succeeded" {
		return "", fmt.Errorf("preview command finished with status %q", *resp.Status)
	}
	if resp.Data == nil {
		return "", fmt.Errorf("preview command returned no data")
	}
	return *resp.Data, nil
}

// DeleteDebugSession tears the debug session down.
func (c *ClientImpl) DeleteDebugSession(ctx context.Context, sessionID string) error {
	_, err := c.sessions.Delete(ctx, c.resourceGroup, c.factoryName,
		armdatafactory.DeleteDataFlowDebugSessionRequest{
			SessionID: utils.Ptr(sessionID),
		}, nil)
	return err
}

func newCredential(opts *Options) (azcore.TokenCredential, error) {
	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		return azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
	}
	return azidentity.NewDefaultAzureCredential(nil)
}
