/*
 *     Copyright 2026 The Iris Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package types

const (
	// RequestIDHeader is http header carrying the request id.
	RequestIDHeader = "X-Request-ID"

	// RequestIDContextKey is gin context key of the request id.
	RequestIDContextKey = "requestID"

	// WelcomeMessage is message of the root endpoint.
	WelcomeMessage = "Welcome! API is running."
)
