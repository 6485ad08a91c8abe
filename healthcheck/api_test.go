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
package healthcheck_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvratios/healthcheck"
)

type ping struct {
	path  string
	runID string
	body  string
}

var _ = Describe("Pinger", func() {
	var (
		server *httptest.Server
		mu     sync.Mutex
		pings  []ping
		status int
	)

	BeforeEach(func() {
		pings = nil
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			pings = append(pings, ping{path: r.URL.Path, runID: r.URL.Query().Get("rid"), body: string(body)})
			mu.Unlock()
			w.WriteHeader(status)
		}))
		DeferCleanup(server.Close)
	})

	newPinger := func(checkID string) *healthcheck.Pinger {
		pinger := healthcheck.New(checkID)
		pinger.BaseURL = server.URL
		return pinger
	}

	It("pings the start, success and fail endpoints", func() {
		pinger := newPinger("abc")
		Expect(pinger.Start("run-1")).To(Succeed())
		Expect(pinger.Success("run-1", "all good")).To(Succeed())
		Expect(pinger.Fail("run-1", "broken")).To(Succeed())

		Expect(pings).To(Equal([]ping{
			{path: "/abc/start", runID: "run-1"},
			{path: "/abc", runID: "run-1", body: "all good"},
			{path: "/abc/fail", runID: "run-1", body: "broken"},
		}))
	})

	It("does nothing without a check id", func() {
		pinger := newPinger("")
		Expect(pinger.Start("run-1")).To(Succeed())
		Expect(pings).To(BeEmpty())
	})

	It("reports an unexpected status code", func() {
		status = http.StatusNotFound
		pinger := newPinger("abc")
		Expect(pinger.Success("", "")).To(MatchError(healthcheck.ErrStatus))
	})

	It("truncates long bodies on a character boundary", func() {
		// 3 bytes per character, so the limit falls inside one
		body := strings.Repeat("营", 40_000)
		pinger := newPinger("abc")
		Expect(pinger.Fail("run-1", body)).To(Succeed())

		Expect(pings).To(HaveLen(1))
		sent := pings[0].body
		Expect(utf8.ValidString(sent)).To(BeTrue())
		Expect(len(sent)).To(Equal(99_999))
		Expect(strings.HasPrefix(body, sent)).To(BeTrue())
	})
})
