package submit

import (
	"studio/internal/booking/csrf"
	"studio/internal/booking/form"
	"studio/pkg/client"
	"studio/pkg/config"
)

// NewFromConfig wires a controller to the API at cfg.APIBaseURL. The returned client
// shares the controller's cookie jar.
func NewFromConfig(cfg *config.ClientConfig, nav Navigator) (*Controller, *client.StudioClient, error) {
	api, err := client.NewStudioClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	cookies, err := csrf.NewJarCookies(api.Jar(), api.BaseURL())
	if err != nil {
		return nil, nil, err
	}

	resolver := csrf.NewResolver(cookies, api, cfg.Log)
	controller := NewController(form.NewSchema(), resolver, api, nav, cfg.SubmitTimeout, cfg.Log)
	return controller, api, nil
}
