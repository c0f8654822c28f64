// @title           docflow API
// @version         1.0
// @description     API документооборота: загрузка документов, уведомления ответственных, администрирование.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /

package main

import "docflow_backend/internal/app"

func main() {
	app.Run()
}
