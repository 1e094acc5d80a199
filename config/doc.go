// Package config loads the file configuration for a traced GraphQL
// deployment.
//
// A file has two sections:
//
//	observe:
//	  service_name: users-api
//	  tracing:
//	    enabled: true
//	    exporter: otlp
//	    sample_pct: 0.1
//	graphql:
//	  resolvers_enabled: true
//	  analytics_enabled: true
//	  analytics_sample_rate: ${GRAPHQL_SAMPLE_RATE}
//
// Loading runs in this order: strict $VAR and ${VAR} expansion of the raw
// file ($$ for a literal $), YAML decoding over Default, GQLTRACE_*
// environment overrides, then validation of both sections.
package config
