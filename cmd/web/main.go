// Сервис допуска участников на роли кастингов.
package main

import "mwork_admission/internal/app"

func main() {
	app.Run()
}
