// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import "context"

// testStyle prints the tag, short severity and values of test messages.
// The test host adds its own timestamps.
var testStyle = Style{Name: "test", Tag: true, Severity: SeverityShort, Values: ValuesSingleLine}

// Testing returns a context that logs every message to t, tagged with the
// name of the test. Messages of Error severity or above fail the test.
func Testing(t delegate) context.Context {
	return SubTest(context.Background(), t)
}

// SubTest returns ctx with its messages sent to t instead.
func SubTest(ctx context.Context, t delegate) context.Context {
	ctx = PutTag(ctx, t.Name())
	ctx = PutFilter(ctx, SeverityFilter(Verbose))
	return PutHandler(ctx, TestHandler(t, testStyle))
}

// TestHandler returns a Handler that prints messages to t in style s.
func TestHandler(t delegate, s Style) Handler {
	if t == nil {
		panic("delegate cannot be nil")
	}
	return NewHandler(func(m *Message) {
		text := s.Print(m)
		switch {
		case m.Severity >= Fatal:
			t.Fatal(text)
		case m.Severity >= Error:
			t.Error(text)
		default:
			t.Log(text)
		}
	}, nil)
}

// delegate is the part of testing.TB used by the test handler.
type delegate interface {
	Name() string
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}
