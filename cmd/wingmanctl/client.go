package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

var httpClient = resty.New()

func doGet(url string) ([]byte, error) {
	resp, err := httpClient.R().Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doPostJSON(url string, payload interface{}) ([]byte, error) {
	resp, err := httpClient.R().SetBody(payload).Post(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doDelete(url string) error {
	resp, err := httpClient.R().Delete(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("DELETE %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return nil
}
