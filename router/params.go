package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dan13ram/cknft-bridge/models"
)

const maxBodyBytes = 1 << 20

func queryParam(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return value, nil
}

func natParam(r *http.Request, name string) (models.Nat, error) {
	value, err := queryParam(r, name)
	if err != nil {
		return models.Nat{}, err
	}
	n, err := models.ParseNat(value)
	if err != nil {
		return models.Nat{}, fmt.Errorf("%w: %s: %s", ErrInvalidParam, name, err.Error())
	}
	return n, nil
}

func uint64Param(r *http.Request, name string) (uint64, error) {
	value, err := queryParam(r, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrInvalidParam, name, err.Error())
	}
	return n, nil
}

// accountParam reads owner and the optional hex subaccount.
func accountParam(r *http.Request) (models.Account, error) {
	owner, err := queryParam(r, "owner")
	if err != nil {
		return models.Account{}, err
	}
	value := r.URL.Query().Get("subaccount")
	if value == "" {
		return models.NewAccount(owner, nil), nil
	}
	subaccount, err := models.SubaccountFromHex(value)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: subaccount: %s", ErrInvalidParam, err.Error())
	}
	return models.NewAccount(owner, &subaccount), nil
}

func decodeBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBody, err.Error())
	}
	return nil
}

func requireCaller(r *http.Request) (string, error) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		return "", ErrMissingCaller
	}
	return caller, nil
}
