/*
Package observability turns engine lifecycle hooks into Prometheus metrics and structured log lines.

Hosts register the collectors once and pass Hooks to biomorph.WithLifecycleHooks:

	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, err := biomorph.New(biomorph.WithLifecycleHooks(m.Hooks()))
*/
package observability
