package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/mergington-hs/activities/internal/registry"
)

// newAPIClient builds the HTTP client the CLI commands use to talk to a
// running server.
func newAPIClient(baseURL string) fastshot.ClientHttpMethods {
	return fastshot.NewClient(baseURL).
		Header().AddAccept("application/json").
		Config().SetTimeout(10 * time.Second).
		Build()
}

func fetchActivities(client fastshot.ClientHttpMethods) (map[string]registry.Activity, error) {
	resp, err := client.GET("/activities").Send()
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.Status().Code() != http.StatusOK {
		return nil, fmt.Errorf("server returned %d", resp.Status().Code())
	}

	var catalog map[string]registry.Activity
	if err := resp.Body().AsJSON(&catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

// submitSignup posts the signup and returns the server's confirmation
// message. Failures carry the server's detail text verbatim.
func submitSignup(client fastshot.ClientHttpMethods, activity, email string) (string, error) {
	resp, err := client.POST("/activities/" + url.PathEscape(activity) + "/signup").
		Query().AddParam("email", email).
		Send()
	if err != nil {
		return "", err
	}
	defer resp.Body().Close()

	if resp.Status().Code() != http.StatusOK {
		var failure struct {
			Detail string `json:"detail"`
		}
		if err := resp.Body().AsJSON(&failure); err != nil || failure.Detail == "" {
			return "", fmt.Errorf("server returned %d", resp.Status().Code())
		}
		return "", fmt.Errorf("%s", failure.Detail)
	}

	var confirmation struct {
		Message string `json:"message"`
	}
	if err := resp.Body().AsJSON(&confirmation); err != nil {
		return "", fmt.Errorf("decode confirmation: %w", err)
	}
	return confirmation.Message, nil
}
