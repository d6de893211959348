package api

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"storefront.GO/model/entity"
)

// envelope is the `{success, data, pagination?, message?, code?}` wrapper every
// endpoint answers with. Data stays loosely typed until the caller knows its shape.
type envelope struct {
	Success    bool                   `json:"success"`
	Data       interface{}            `json:"data"`
	Pagination map[string]interface{} `json:"pagination"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code"`
}

func decodeEnvelope(r io.Reader) (*envelope, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

var moneyType = reflect.TypeOf(entity.Money{})

// moneyHook turns json.Number / string / float payloads into entity.Money.
func moneyHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != moneyType {
			return data, nil
		}
		return entity.ParseMoney(data)
	}
}

// decodeData maps a loosely typed payload onto out. Ids and counts may arrive as
// numbers or strings, prices as numbers or strings.
func decodeData(in interface{}, out interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       moneyHook(),
		Result:           out,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
