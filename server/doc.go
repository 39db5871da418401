// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


/*
Package server exposes a Searcher over HTTP.

Routes:

	GET /search?code=<partial code>   matching rows as {success, data} JSON
	GET /healthcheck                  liveness with configuration flags
	GET /                             the front-end index file
	GET /<asset>                      files from the static directory

Every request carries an X-Request-ID header, generated when the client does not
send one, and the id is attached to the request context so engine log lines can
be correlated. Searches run on a bounded worker pool; when the pool and its wait
queue are full the request is answered with 503.
*/
package server
