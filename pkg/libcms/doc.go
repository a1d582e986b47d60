//
// libcms is a client that interacts with the content-management REST API (blog posts, events and gallery).
//

// Create client
//
//	tokens := libcms.NewTokenStore("")
//	client, err := libcms.NewDefaultClient("http://localhost:7777/api/", tokens)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authenticate
//
//	token, err := client.Login(ctx, "admin@nowhere.lan", "password42")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tokens.SetToken(token) // Read by the client on every following request.
//
// Create a post
//
//	image, err := libcms.EncodeFile("cover.jpg") // Rejected when bigger than libcms.MaxImageSize.
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = client.CreatePost(ctx, libcms.PostParams{
//		Title:       "Hello",
//		Description: "World",
//		Image:       image.Data,
//	})
//	if err != nil {
//		log.Fatal(libcms.Message(err, "could not create post"))
//	}
//
// Get all events
//
//	events, err := client.Events(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, event := range events {
//		fmt.Println(event.Date, event.Title, event.Active())
//	}
package libcms
