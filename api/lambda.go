package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Lambda adapts the handler to an API Gateway (or Netlify function) proxy event.
func (h *Handler) Lambda(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return proxyResponse(h.failed(h.logger, fmt.Errorf("Invalid base64 request body (%w)", err))), nil
		}

		body = decoded
	}

	header := http.Header{}
	for k, v := range event.Headers {
		header.Set(k, v)
	}

	for k, list := range event.MultiValueHeaders {
		for _, v := range list {
			if header.Get(k) == "" {
				header.Add(k, v)
			}
		}
	}

	rs := h.Handle(ctx, Request{
		Method: event.HTTPMethod,
		Header: header,
		Body:   body,
	})

	return proxyResponse(rs), nil
}

func proxyResponse(rs Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: rs.StatusCode,
		Headers:    rs.Headers,
		Body:       string(rs.Body),
	}
}
