package http

import (
	"sync"

	"checkout/api"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const swaggerInstance = "checkout"

var registerSwagger sync.Once

type embeddedDoc struct{}

func (embeddedDoc) ReadDoc() string {
	doc, err := api.JSON()
	if err != nil {
		return "{}"
	}
	return string(doc)
}

// SwaggerHandler serves the swagger UI for the embedded OpenAPI document.
func SwaggerHandler() echo.HandlerFunc {
	registerSwagger.Do(func() {
		swag.Register(swaggerInstance, embeddedDoc{})
	})
	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance))
}
