/*
 * Copyright 2026 the cudymon authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cudy

import "errors"

var (
	errAuthFailed           = errors.New("authentication failed")
	errCookieMissing        = errors.New("login response carried no sysauth cookie")
	errSessionExpired       = errors.New("session expired and re-authentication failed")
	errUnexpectedStatusCode = errors.New("unexpected status code")
)
