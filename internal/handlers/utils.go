package handlers

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/amaumene/gostremioagg/internal/errors"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/gin-gonic/gin"
)

// stripJSONExtension removes .json extension from a parameter if present
func stripJSONExtension(c *gin.Context, paramName string) {
	value := c.Param(paramName)
	if strings.HasSuffix(value, ".json") {
		for i, param := range c.Params {
			if param.Key == paramName {
				c.Params[i].Value = strings.TrimSuffix(value, ".json")
				break
			}
		}
	}
}

// configEncodings are tried in order; clients differ in padding and alphabet.
var configEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

// decodeUserConfig decodes the base64 JSON configuration path segment.
func decodeUserConfig(encoded string) (models.UserConfig, error) {
	var cfg models.UserConfig

	var data []byte
	var err error
	for _, enc := range configEncodings {
		if data, err = enc.DecodeString(encoded); err == nil {
			break
		}
	}
	if err != nil {
		return cfg, errors.NewConfigurationError("configuration is not valid base64", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.NewConfigurationError("configuration is not valid JSON", err)
	}
	return cfg, nil
}
