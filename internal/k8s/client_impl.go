package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/giantswarm/kube-panel/internal/logging"
)

// kubernetesClient implements the Client interface using client-go.
type kubernetesClient struct {
	// Configuration
	config *ClientConfig

	// Client cache for multi-cluster support
	mu             sync.RWMutex
	dynamicClients map[string]dynamic.Interface // Context name -> dynamic client
	restConfigs    map[string]*rest.Config      // Context name -> rest config
	clientGroup    singleflight.Group           // dedups concurrent client creation per context

	// Kubeconfig management
	kubeconfigData *clientcmdapi.Config
	currentContext string

	// Resource type mappings
	builtinResources map[string]resourceMapping

	// Safety settings
	nonDestructiveMode   bool
	dryRun               bool
	allowedOperations    []string
	restrictedNamespaces []string

	// Performance settings
	qpsLimit   float32
	burstLimit int
	timeout    time.Duration
}

// ClientConfig holds configuration for the Kubernetes client.
type ClientConfig struct {
	// Kubeconfig settings
	KubeconfigPath string
	Context        string

	// Authentication mode
	InCluster bool // Use in-cluster service account authentication instead of kubeconfig

	// Safety settings
	NonDestructiveMode   bool
	DryRun               bool
	AllowedOperations    []string
	RestrictedNamespaces []string

	// Performance settings
	QPSLimit   float32
	BurstLimit int
	Timeout    time.Duration

	// Debug settings
	DebugMode bool

	// Logging
	Logger Logger

	// Metrics, optional
	Recorder OperationRecorder
}

// NewClient creates a new Kubernetes client with the given configuration.
func NewClient(config *ClientConfig) (*kubernetesClient, error) {
	if config == nil {
		return nil, fmt.Errorf("client configuration is required")
	}

	if config.QPSLimit == 0 {
		config.QPSLimit = DefaultQPSLimit
	}
	if config.BurstLimit == 0 {
		config.BurstLimit = DefaultBurstLimit
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout * time.Second
	}

	client := &kubernetesClient{
		config:               config,
		dynamicClients:       make(map[string]dynamic.Interface),
		restConfigs:          make(map[string]*rest.Config),
		nonDestructiveMode:   config.NonDestructiveMode,
		dryRun:               config.DryRun,
		allowedOperations:    config.AllowedOperations,
		restrictedNamespaces: config.RestrictedNamespaces,
		qpsLimit:             config.QPSLimit,
		burstLimit:           config.BurstLimit,
		timeout:              config.Timeout,
		builtinResources:     initBuiltinResources(),
	}

	if config.InCluster {
		client.currentContext = InClusterContext

		if err := client.validateInClusterEnvironment(); err != nil {
			return nil, fmt.Errorf("in-cluster authentication not available: %w", err)
		}

		if config.Logger != nil {
			config.Logger.Info("Using in-cluster authentication")
		}
		return client, nil
	}

	if err := client.loadKubeconfig(); err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	if config.Context != "" {
		client.currentContext = config.Context
	} else {
		client.currentContext = client.kubeconfigData.CurrentContext
	}

	if _, exists := client.kubeconfigData.Contexts[client.currentContext]; !exists && client.currentContext != "" {
		return nil, fmt.Errorf("%w: %q does not exist in kubeconfig", ErrContextNotFound, client.currentContext)
	}

	if config.Logger != nil {
		config.Logger.Info("Using kubeconfig authentication", "context", client.currentContext)
	}

	return client, nil
}

// validateInClusterEnvironment checks if the required in-cluster authentication files are present.
func (c *kubernetesClient) validateInClusterEnvironment() error {
	for what, path := range map[string]string{
		"token":          DefaultTokenPath,
		"CA certificate": DefaultCACertPath,
		"namespace":      DefaultNamespacePath,
	} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("service account %s not found at %s", what, path)
		}
	}
	return nil
}

// loadKubeconfig loads the kubeconfig from the specified path or default locations.
func (c *kubernetesClient) loadKubeconfig() error {
	if c.config.KubeconfigPath == "" {
		c.config.KubeconfigPath = expandHome(os.Getenv("KUBECONFIG"))
	} else {
		c.config.KubeconfigPath = expandHome(c.config.KubeconfigPath)
	}

	rawConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		c.loadingRules(),
		&clientcmd.ConfigOverrides{},
	).RawConfig()
	if err != nil {
		return err
	}
	c.kubeconfigData = &rawConfig

	return nil
}

func (c *kubernetesClient) loadingRules() *clientcmd.ClientConfigLoadingRules {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.config.KubeconfigPath != "" {
		loadingRules.ExplicitPath = c.config.KubeconfigPath
	}
	return loadingRules
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// contextName resolves an empty context name to the current context.
func (c *kubernetesClient) contextName(name string) string {
	if name != "" {
		return name
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentContext
}

// getRestConfigLocked returns a rest.Config for the specified context.
// Caller must hold the write lock.
func (c *kubernetesClient) getRestConfigLocked(contextName string) (*rest.Config, error) {
	if restConfig, exists := c.restConfigs[contextName]; exists {
		return restConfig, nil
	}

	var restConfig *rest.Config
	var err error

	if c.config.InCluster {
		restConfig, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create in-cluster rest config: %w", err)
		}
	} else {
		restConfig, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			c.loadingRules(),
			&clientcmd.ConfigOverrides{CurrentContext: contextName},
		).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create rest config for context %q: %w", contextName, err)
		}
	}

	restConfig.QPS = c.qpsLimit
	restConfig.Burst = c.burstLimit
	restConfig.Timeout = c.timeout

	if c.config.DebugMode && c.config.Logger != nil {
		c.config.Logger.Debug("created REST config",
			"context", contextName,
			logging.Host(restConfig.Host),
			"qps", c.qpsLimit,
			"burst", c.burstLimit)
	}

	c.restConfigs[contextName] = restConfig
	return restConfig, nil
}

// getDynamicClient returns a cached dynamic client for the specified context.
// Concurrent misses for the same context build a single client.
func (c *kubernetesClient) getDynamicClient(contextName string) (dynamic.Interface, error) {
	contextName = c.contextName(contextName)

	c.mu.RLock()
	if dynamicClient, exists := c.dynamicClients[contextName]; exists {
		c.mu.RUnlock()
		return dynamicClient, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.clientGroup.Do(contextName, func() (interface{}, error) {
		c.mu.Lock()
		if dynamicClient, exists := c.dynamicClients[contextName]; exists {
			c.mu.Unlock()
			return dynamicClient, nil
		}
		restConfig, err := c.getRestConfigLocked(contextName)
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}

		dynamicClient, err := dynamic.NewForConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamic client for context %q: %w", contextName, err)
		}

		c.mu.Lock()
		c.dynamicClients[contextName] = dynamicClient
		c.mu.Unlock()
		return dynamicClient, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(dynamic.Interface), nil
}

// isOperationAllowed checks if an operation is allowed based on configuration.
func (c *kubernetesClient) isOperationAllowed(operation string) error {
	if len(c.allowedOperations) > 0 && !slices.Contains(c.allowedOperations, operation) {
		return &OperationError{Operation: operation, Reason: "is not allowed"}
	}

	// An allow list that names a destructive operation exempts it from
	// non-destructive mode.
	if c.nonDestructiveMode && !c.dryRun && isDestructive(operation) &&
		!slices.Contains(c.allowedOperations, operation) {
		return &OperationError{Operation: operation, Reason: "is a destructive operation and is not allowed in non-destructive mode"}
	}

	return nil
}

func isDestructive(operation string) bool {
	return operation == OperationDelete || operation == OperationApply
}

// isNamespaceRestricted checks if a namespace is restricted.
func (c *kubernetesClient) isNamespaceRestricted(namespace string) error {
	if slices.Contains(c.restrictedNamespaces, namespace) {
		return fmt.Errorf("%w: access to namespace %q is restricted", ErrNamespaceRestricted, namespace)
	}
	return nil
}

// logOperation logs an operation for debugging and audit purposes.
func (c *kubernetesClient) logOperation(operation, kubeContext, namespace, resource, name string) {
	if c.config.Logger != nil {
		c.config.Logger.Debug("kubernetes operation",
			logging.Operation(operation),
			"context", kubeContext,
			logging.Namespace(namespace),
			logging.ResourceType(resource),
			logging.ResourceName(name),
		)
	}
}

// recordOperation reports the outcome of an API call to the configured recorder.
func (c *kubernetesClient) recordOperation(ctx context.Context, operation, resourceType, namespace string, start time.Time, err error) {
	if c.config.Recorder == nil {
		return
	}
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	c.config.Recorder.RecordK8sOperation(ctx, operation, resourceType, namespace, status, time.Since(start))
}

// ContextManager implementation

func (c *kubernetesClient) inClusterContext() ContextInfo {
	return ContextInfo{
		Name:      InClusterContext,
		Cluster:   InClusterContext,
		User:      "serviceaccount",
		Namespace: c.getInClusterNamespace(),
		Current:   true,
	}
}

// ListContexts returns all available Kubernetes contexts sorted by name.
func (c *kubernetesClient) ListContexts(ctx context.Context) ([]ContextInfo, error) {
	c.logOperation("list-contexts", "", "", "", "")

	if c.config.InCluster {
		return []ContextInfo{c.inClusterContext()}, nil
	}

	current := c.contextName("")
	contexts := make([]ContextInfo, 0, len(c.kubeconfigData.Contexts))
	for contextName, contextInfo := range c.kubeconfigData.Contexts {
		contexts = append(contexts, ContextInfo{
			Name:      contextName,
			Cluster:   contextInfo.Cluster,
			User:      contextInfo.AuthInfo,
			Namespace: contextInfo.Namespace,
			Current:   contextName == current,
		})
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })

	return contexts, nil
}

// GetCurrentContext returns the currently active context.
func (c *kubernetesClient) GetCurrentContext(ctx context.Context) (*ContextInfo, error) {
	current := c.contextName("")
	c.logOperation("get-current-context", current, "", "", "")

	if c.config.InCluster {
		info := c.inClusterContext()
		return &info, nil
	}

	contextInfo, exists := c.kubeconfigData.Contexts[current]
	if !exists {
		return nil, fmt.Errorf("%w: current context %q", ErrContextNotFound, current)
	}

	return &ContextInfo{
		Name:      current,
		Cluster:   contextInfo.Cluster,
		User:      contextInfo.AuthInfo,
		Namespace: contextInfo.Namespace,
		Current:   true,
	}, nil
}

// SwitchContext changes the active Kubernetes context.
func (c *kubernetesClient) SwitchContext(ctx context.Context, contextName string) error {
	c.logOperation("switch-context", contextName, "", "", "")

	if c.config.InCluster {
		if contextName != InClusterContext {
			return fmt.Errorf("cannot switch context in in-cluster mode: only %q context is available", InClusterContext)
		}
		return nil
	}

	if _, exists := c.kubeconfigData.Contexts[contextName]; !exists {
		return fmt.Errorf("%w: %q does not exist in kubeconfig", ErrContextNotFound, contextName)
	}

	c.mu.Lock()
	c.currentContext = contextName
	c.mu.Unlock()

	if c.config.Logger != nil {
		c.config.Logger.Info("switched kubernetes context", "context", contextName)
	}

	return nil
}

// getInClusterNamespace reads the namespace from the service account namespace file.
func (c *kubernetesClient) getInClusterNamespace() string {
	data, err := os.ReadFile(DefaultNamespacePath)
	if err != nil {
		return "default"
	}
	return strings.TrimSpace(string(data))
}
