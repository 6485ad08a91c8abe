// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package healthcheck

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

var (
	ErrStatus = errors.New("status code is invalid")
)

const DefaultBaseURL = "https://hc-ping.com"

// maxBodyLen is the largest request body accepted by healthchecks.io
const maxBodyLen = 100_000

// Pinger reports the progress of a batch run to a healthchecks.io check.
// A Pinger without a check id does nothing.
type Pinger struct {
	CheckID string
	BaseURL string

	client *resty.Client
}

// New returns a pinger for checkID
func New(checkID string) *Pinger {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second)
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal

	return &Pinger{
		CheckID: checkID,
		BaseURL: DefaultBaseURL,
		client:  client,
	}
}

// Start signals that the run has begun
func (pinger *Pinger) Start(runID string) error {
	return pinger.ping("/start", runID, "")
}

// Success signals that the run finished; body is attached to the ping
func (pinger *Pinger) Success(runID, body string) error {
	return pinger.ping("", runID, body)
}

// Fail signals that the run failed; body is attached to the ping
func (pinger *Pinger) Fail(runID, body string) error {
	return pinger.ping("/fail", runID, body)
}

func (pinger *Pinger) ping(endpoint, runID, body string) error {
	if pinger.CheckID == "" {
		return nil
	}

	body = truncate(body, maxBodyLen)

	pingURL := fmt.Sprintf("%s/%s%s", strings.TrimRight(pinger.BaseURL, "/"), pinger.CheckID, endpoint)
	req := pinger.client.R().SetHeader("Content-Type", "text/plain")
	if runID != "" {
		req.SetQueryParam("rid", runID)
	}
	if body != "" {
		req.SetBody(body)
	}

	resp, err := req.Post(pingURL)
	if err != nil {
		log.Warn().Err(err).Str("URL", pingURL).Msg("health check ping failed")
		return err
	}

	if resp.StatusCode() != 200 {
		log.Warn().Int("StatusCode", resp.StatusCode()).Str("URL", pingURL).Msg("health check ping returned an invalid status code")
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}

// truncate shortens body to at most n bytes without splitting a UTF-8
// encoded character
func truncate(body string, n int) string {
	if len(body) <= n {
		return body
	}

	cut := n
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
