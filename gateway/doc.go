// Package gateway is a client for the payment gateway's Direct API and
// Hosted Payment Page.
//
// # Configuration
//
// Merchant credentials and endpoints are read from YAML:
//
//	merchant_id: "100001"
//	merchant_secret: "Circle4Take40Idea"
//	direct_url: "https://gateway.handpoint.com/direct/"
//	proxy_url: "socks5://127.0.0.1:1080"
//	timeout: 30s
//
//	cfg, err := gateway.LoadConfig("paygate.yaml")
//
// # Direct Requests
//
// Direct signs the request, posts it and verifies the signed answer:
//
//	client, err := gateway.New(cfg, gateway.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.Direct(ctx, fields.Pairs{
//	    {Key: "action", Value: "SALE"},
//	    {Key: "amount", Value: "1001"},
//	    {Key: "transactionUnique", Value: gateway.NewTransactionUnique()},
//	})
//
// A request may carry merchantSecret, directUrl or hostedUrl fields to
// override the configuration for that call. They are never transmitted.
//
// # Hosted Payment Page
//
// Hosted returns signed fields and the form action for a page the caller
// renders in the payer's browser. HostedFrom also defaults redirectURL to
// the URL of the incoming request. Callbacks and redirects from the gateway
// are checked with VerifyCallback or the formsig middleware.
//
// # Observability
//
// The client logs through zap, records Prometheus metrics when WithMetrics
// is set and opens an OpenTelemetry span per direct request. Secrets,
// passwords and signatures are never logged.
package gateway
